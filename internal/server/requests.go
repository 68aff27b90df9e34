package server

import (
	"net/http"

	"bloodlink/pkg/types"

	"github.com/sirupsen/logrus"
)

type statusBody struct {
	Status types.RequestStatus `json:"status"`
}

type rateBody struct {
	Rating   *float64 `json:"rating"`
	Feedback *string  `json:"feedback"`
}

type matchQuery struct {
	Radius *float64 `form:"radius"`
}

func (s *Service) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	request := new(types.BloodRequest)
	if !s.decodeBody(w, r, request) {
		return
	}
	request.ID = ""

	stored, err := s.requests.Create(r.Context(), request)
	if err != nil {
		s.handleError(w, r, err, "create blood request")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"request_id":  stored.ID,
		"blood_group": stored.BloodGroup,
		"urgency":     stored.Urgency,
	}).Info("blood request created")
	s.writeData(w, r, http.StatusCreated, stored)
}

func (s *Service) handleListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.requests.List(r.Context())
	if err != nil {
		s.handleError(w, r, err, "list blood requests")
		return
	}

	writeList(s, w, r, requests)
}

func (s *Service) handleUrgentRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.requests.Urgent(r.Context())
	if err != nil {
		s.handleError(w, r, err, "list urgent blood requests")
		return
	}

	writeList(s, w, r, requests)
}

func (s *Service) handleRequestsByStatus(w http.ResponseWriter, r *http.Request) {
	status := types.RequestStatus(r.PathValue("status"))

	requests, err := s.requests.ListByStatus(r.Context(), status)
	if err != nil {
		s.handleError(w, r, err, "list blood requests by status")
		return
	}

	writeList(s, w, r, requests)
}

func (s *Service) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	request, err := s.requests.Request(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err, "fetch blood request")
		return
	}

	s.writeData(w, r, http.StatusOK, request)
}

func (s *Service) handleUpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	var body statusBody
	if !s.decodeBody(w, r, &body) {
		return
	}

	request, err := s.requests.UpdateStatus(r.Context(), r.PathValue("id"), body.Status)
	if err != nil {
		s.handleError(w, r, err, "update blood request status")
		return
	}

	s.writeData(w, r, http.StatusOK, request)
}

func (s *Service) handleRateRequest(w http.ResponseWriter, r *http.Request) {
	var body rateBody
	if !s.decodeBody(w, r, &body) {
		return
	}

	request, err := s.requests.Rate(r.Context(), r.PathValue("id"), body.Rating, body.Feedback)
	if err != nil {
		s.handleError(w, r, err, "rate blood request")
		return
	}

	s.writeData(w, r, http.StatusOK, request)
}

func (s *Service) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	if err := s.requests.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.handleError(w, r, err, "delete blood request")
		return
	}

	s.writeJSON(w, r, http.StatusOK, envelope{Success: true, Message: "Request deleted"})
}

// handleRequestMatches lists available donors of the requested blood group
// around the request's location.
func (s *Service) handleRequestMatches(w http.ResponseWriter, r *http.Request) {
	var q matchQuery
	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "radius must be a number")
		return
	}

	radius := s.config.DefaultSearchRadiusKm
	if q.Radius != nil {
		radius = *q.Radius
	}

	request, err := s.requests.Request(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err, "match blood request")
		return
	}

	results, err := s.search.MatchRequest(r.Context(), request, radius)
	if err != nil {
		s.handleError(w, r, err, "match blood request")
		return
	}

	writeList(s, w, r, results)
}
