package types

type StorageMode string

const (
	StorageModeDurable StorageMode = "durable"
	StorageModeMemory  StorageMode = "memory"
)

type Stats struct {
	TotalDonors           int                   `json:"totalDonors"`
	AvailableDonors       int                   `json:"availableDonors"`
	DonorsWithLocation    int                   `json:"donorsWithLocation"`
	DonorsByBloodGroup    map[BloodGroup]int    `json:"donorsByBloodGroup"`
	DonorsByCity          map[string]int        `json:"donorsByCity"`
	TotalRequests         int                   `json:"totalRequests"`
	RequestsByStatus      map[RequestStatus]int `json:"requestsByStatus"`
	UrgentPendingRequests int                   `json:"urgentPendingRequests"`
	StorageMode           StorageMode           `json:"storageMode"`
}
