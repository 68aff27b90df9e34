package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// NanoIDDefaultSize is the length of donor and blood request IDs.
const NanoIDDefaultSize = 21

// URL-safe without the characters that are easy to misread over the phone.
const nanoidAlphabet = "23456789abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

func NanoID() string {
	return NanoIDSize(NanoIDDefaultSize)
}

func NanoIDSize(size int) string {
	if size <= 0 {
		size = NanoIDDefaultSize
	}

	return gonanoid.MustGenerate(nanoidAlphabet, size)
}
