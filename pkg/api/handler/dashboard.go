package handler

import (
	"net/http"

	"github.com/darta-hq/darta-assistant/pkg/api/response"
	"github.com/darta-hq/darta-assistant/pkg/domain"
)

type DashboardRepository interface {
	Get() domain.DashboardData
}

type dashboard struct {
	repo   DashboardRepository
	writer response.JSONResponseWriter
}

func NewDashboard(repo DashboardRepository) *dashboard {
	return &dashboard{repo: repo}
}

func (d *dashboard) Get(w http.ResponseWriter, r *http.Request) {
	d.writer.WriteSuccessResponse(w, d.repo.Get())
}
