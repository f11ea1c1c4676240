package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResourceCard groups related safety resource entries for display.
type ResourceCard struct {
	Title   string          `json:"title"`
	Entries []ResourceEntry `json:"entries"`
}

// ResourceEntry is a single resource line, optionally with a detail value.
type ResourceEntry struct {
	Title string `json:"title"`
	Value string `json:"value,omitempty"`
}

// CampusMapResponse describes the safety map payload: legend categories and
// advisory notes. The map tiles themselves are rendered client side.
type CampusMapResponse struct {
	Description string   `json:"description"`
	Legend      []string `json:"legend"`
	SafetyNotes []string `json:"safetyNotes"`
}

// ResourcesHandler serves the static campus safety content.
type ResourcesHandler struct{}

// NewResourcesHandler constructs ResourcesHandler.
func NewResourcesHandler() *ResourcesHandler {
	return &ResourcesHandler{}
}

// RegisterRoutes binds the resource routes. These are public; no session is
// required so the content stays reachable from the landing page.
func (h *ResourcesHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/resources", h.resources)
	r.GET("/campus-map", h.campusMap)
}

func (h *ResourcesHandler) resources(c *gin.Context) {
	c.JSON(http.StatusOK, []ResourceCard{
		{
			Title: "Emergency Contacts",
			Entries: []ResourceEntry{
				{Title: "Campus Security", Value: "044-2745-5666"},
				{Title: "Women's Safety Cell", Value: "044-2745-5777"},
				{Title: "Health Center", Value: "044-2745-5888"},
				{Title: "Counseling Services", Value: "044-2745-5999"},
			},
		},
		{
			Title: "Safety Guidelines",
			Entries: []ResourceEntry{
				{Title: "Always travel in groups after dark"},
				{Title: "Keep your family/friends informed of your whereabouts"},
				{Title: "Use well-lit, populated pathways on campus"},
				{Title: "Report suspicious activities immediately"},
			},
		},
		{
			Title: "Support Services",
			Entries: []ResourceEntry{
				{Title: "Peer Support Group", Value: "Every Wednesday, 5 PM"},
				{Title: "Counseling Hours", Value: "Mon-Fri, 9 AM - 5 PM"},
				{Title: "Women's Cell", Value: "Room 204, Main Building"},
				{Title: "Legal Aid", Value: "By appointment"},
			},
		},
		{
			Title: "Safe Zones",
			Entries: []ResourceEntry{
				{Title: "Library", Value: "Open 24/7"},
				{Title: "Student Center", Value: "8 AM - 10 PM"},
				{Title: "Security Posts", Value: "All entrances"},
				{Title: "Help Points", Value: "Located across campus"},
			},
		},
	})
}

func (h *ResourcesHandler) campusMap(c *gin.Context) {
	c.JSON(http.StatusOK, CampusMapResponse{
		Description: "Important safety locations across the SRM University campus, including security posts, emergency phones, safe zones, and well-lit pathways.",
		Legend: []string{
			"Emergency Phones",
			"Security Posts",
			"Safe Zones",
			"Well-lit Pathways",
		},
		SafetyNotes: []string{
			"Always use well-lit pathways when walking at night",
			"Emergency phones connect directly to campus security",
			"Safe zones are available 24/7 and have security personnel",
			"Report any broken lights or safety concerns immediately",
		},
	})
}
