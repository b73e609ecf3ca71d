package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trainhub/trainhub-backend-go/internal/domain/attendance"
	"github.com/trainhub/trainhub-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	GetMyOverview(w http.ResponseWriter, r *http.Request)
	GetTraineeOverview(w http.ResponseWriter, r *http.Request)
	GetMyLog(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// GetMyOverview implements AttendanceHandler. The optional week query
// parameter filters flagged days to one Sunday-keyed week.
func (h *AttendanceHandlerImpl) GetMyOverview(w http.ResponseWriter, r *http.Request) {
	filter := attendance.OverviewFilter{
		Week: r.URL.Query().Get("week"),
	}

	overview, err := h.attendanceService.GetMyOverview(r.Context(), filter)
	if err != nil {
		slog.Error("GetMyOverview service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}

// GetTraineeOverview implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetTraineeOverview(w http.ResponseWriter, r *http.Request) {
	req := attendance.TraineeOverviewRequest{
		TraineeID: chi.URLParam(r, "traineeID"),
		Filter: attendance.OverviewFilter{
			Week: r.URL.Query().Get("week"),
		},
	}

	overview, err := h.attendanceService.GetTraineeOverview(r.Context(), req)
	if err != nil {
		slog.Error("GetTraineeOverview service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}

// GetMyLog implements AttendanceHandler. Returns the raw per-event log
// without any aggregation.
func (h *AttendanceHandlerImpl) GetMyLog(w http.ResponseWriter, r *http.Request) {
	payload, err := h.attendanceService.GetMyLog(r.Context())
	if err != nil {
		slog.Error("GetMyLog service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, payload)
}
