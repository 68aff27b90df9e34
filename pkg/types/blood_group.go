package types

import (
	"fmt"
	"strings"
)

type BloodGroup string

const (
	BloodGroupOPositive  BloodGroup = "O+"
	BloodGroupONegative  BloodGroup = "O-"
	BloodGroupAPositive  BloodGroup = "A+"
	BloodGroupANegative  BloodGroup = "A-"
	BloodGroupBPositive  BloodGroup = "B+"
	BloodGroupBNegative  BloodGroup = "B-"
	BloodGroupABPositive BloodGroup = "AB+"
	BloodGroupABNegative BloodGroup = "AB-"
)

var AllBloodGroups = []BloodGroup{
	BloodGroupOPositive,
	BloodGroupONegative,
	BloodGroupAPositive,
	BloodGroupANegative,
	BloodGroupBPositive,
	BloodGroupBNegative,
	BloodGroupABPositive,
	BloodGroupABNegative,
}

func (g BloodGroup) Valid() bool {
	for _, v := range AllBloodGroups {
		if g == v {
			return true
		}
	}
	return false
}

func (g BloodGroup) String() string {
	return string(g)
}

// ParseBloodGroup normalizes user input into one of the canonical groups.
// A trailing space is read as "+", since an unescaped "+" in a query string
// decodes to a space ("A+" arrives as "A ").
func ParseBloodGroup(raw string) (BloodGroup, error) {
	v := strings.TrimLeft(raw, " ")
	if strings.HasSuffix(v, " ") {
		v = strings.TrimRight(v, " ") + "+"
	}

	g := BloodGroup(strings.ToUpper(v))
	if !g.Valid() {
		return "", fmt.Errorf("%w: blood group %q must be one of %s", ErrInvalidArgument, raw, bloodGroupList())
	}

	return g, nil
}

func bloodGroupList() string {
	out := make([]string, 0, len(AllBloodGroups))
	for _, g := range AllBloodGroups {
		out = append(out, string(g))
	}
	return strings.Join(out, " ")
}
