package server

import (
	"net/http"
	"strings"

	"bloodlink/pkg/types"
)

type donorSearchQuery struct {
	BloodGroup string `form:"bloodGroup"`
	City       string `form:"city"`
}

type nearbyQuery struct {
	Latitude   *float64 `form:"latitude"`
	Longitude  *float64 `form:"longitude"`
	Radius     *float64 `form:"radius"`
	BloodGroup string   `form:"bloodGroup"`
}

type availabilityBody struct {
	IsAvailable *bool `json:"isAvailable"`
}

func (s *Service) handleListDonors(w http.ResponseWriter, r *http.Request) {
	donors, err := s.donors.ListAll(r.Context())
	if err != nil {
		s.handleError(w, r, err, "list donors")
		return
	}

	writeList(s, w, r, donors)
}

func (s *Service) handleCreateDonor(w http.ResponseWriter, r *http.Request) {
	donor := &types.Donor{IsAvailable: true}
	if !s.decodeBody(w, r, donor) {
		return
	}

	// IDs are assigned by the store.
	donor.ID = ""
	donor.Name = strings.TrimSpace(donor.Name)
	donor.City = strings.TrimSpace(donor.City)
	donor.Phone = strings.TrimSpace(donor.Phone)

	stored, err := s.donors.Insert(r.Context(), donor)
	if err != nil {
		s.handleError(w, r, err, "create donor")
		return
	}

	s.logger.WithField("donor_id", stored.ID).Info("donor registered")
	s.writeData(w, r, http.StatusCreated, stored)
}

func (s *Service) handleSearchDonors(w http.ResponseWriter, r *http.Request) {
	var q donorSearchQuery
	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid query parameters")
		return
	}

	var filter types.DonorFilter
	if q.BloodGroup != "" {
		group, err := types.ParseBloodGroup(q.BloodGroup)
		if err != nil {
			s.handleError(w, r, err, "search donors")
			return
		}
		filter.BloodGroup = &group
	}
	if city := strings.TrimSpace(q.City); city != "" {
		filter.City = &city
	}

	donors, err := s.donors.FindByAttributes(r.Context(), filter)
	if err != nil {
		s.handleError(w, r, err, "search donors")
		return
	}

	writeList(s, w, r, donors)
}

func (s *Service) handleNearbyDonors(w http.ResponseWriter, r *http.Request) {
	var q nearbyQuery
	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "latitude, longitude and radius must be numbers")
		return
	}

	if q.Latitude == nil || q.Longitude == nil {
		s.writeError(w, r, http.StatusBadRequest, msgLatLonRequired)
		return
	}

	geo := types.GeoQuery{
		Latitude:  *q.Latitude,
		Longitude: *q.Longitude,
		RadiusKm:  s.config.DefaultSearchRadiusKm,
	}
	if q.Radius != nil {
		geo.RadiusKm = *q.Radius
	}
	if q.BloodGroup != "" {
		group, err := types.ParseBloodGroup(q.BloodGroup)
		if err != nil {
			s.handleError(w, r, err, "find nearby donors")
			return
		}
		geo.BloodGroup = &group
	}

	results, err := s.search.FindNearby(r.Context(), geo)
	if err != nil {
		s.handleError(w, r, err, "find nearby donors")
		return
	}

	writeList(s, w, r, results)
}

func (s *Service) handleGetDonor(w http.ResponseWriter, r *http.Request) {
	donor, err := s.donors.Donor(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err, "fetch donor")
		return
	}

	s.writeData(w, r, http.StatusOK, donor)
}

func (s *Service) handleSetDonorAvailability(w http.ResponseWriter, r *http.Request) {
	var body availabilityBody
	if !s.decodeBody(w, r, &body) {
		return
	}
	if body.IsAvailable == nil {
		s.writeError(w, r, http.StatusBadRequest, "isAvailable is required")
		return
	}

	donor, err := s.donors.SetAvailability(r.Context(), r.PathValue("id"), *body.IsAvailable)
	if err != nil {
		s.handleError(w, r, err, "set donor availability")
		return
	}

	s.writeData(w, r, http.StatusOK, donor)
}
