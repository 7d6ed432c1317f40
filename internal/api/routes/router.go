package routes

import (
	"encoding/json"
	"net/http"

	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/api/handlers"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/api/middleware"
	"github.com/zatekoja/Implantcaseplanningdesign/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	caseHandler       *handlers.CaseHandler
	planningHandler   *handlers.PlanningHandler
	checklistHandler  *handlers.ChecklistHandler
	feedbackHandler   *handlers.FeedbackHandler
	attachmentHandler *handlers.AttachmentHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	caseHandler *handlers.CaseHandler,
	planningHandler *handlers.PlanningHandler,
	checklistHandler *handlers.ChecklistHandler,
	feedbackHandler *handlers.FeedbackHandler,
	attachmentHandler *handlers.AttachmentHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		caseHandler:       caseHandler,
		planningHandler:   planningHandler,
		checklistHandler:  checklistHandler,
		feedbackHandler:   feedbackHandler,
		attachmentHandler: attachmentHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Root endpoint carries the decision-support disclaimer
	r.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message":    "Dental Implant Planning API",
			"disclaimer": "Decision support only. Final responsibility lies with the clinician.",
		})
	})

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Case endpoints
	r.mux.HandleFunc("POST /api/cases", r.caseHandler.CreateCase)
	r.mux.HandleFunc("GET /api/cases", r.caseHandler.ListCases)
	r.mux.HandleFunc("GET /api/cases/{id}", r.caseHandler.GetCase)
	r.mux.HandleFunc("PUT /api/cases/{id}", r.caseHandler.UpdateCase)
	r.mux.HandleFunc("DELETE /api/cases/{id}", r.caseHandler.DeleteCase)
	r.mux.HandleFunc("PUT /api/cases/{id}/status", r.caseHandler.UpdateCaseStatus)

	// Risk analysis endpoint
	r.mux.HandleFunc("POST /api/cases/{id}/analyze", r.planningHandler.AnalyzeCase)

	// Checklist endpoints
	r.mux.HandleFunc("PUT /api/cases/{id}/checklists", r.checklistHandler.UpdateChecklist)
	r.mux.HandleFunc("POST /api/cases/{id}/checklists/{phase}/item", r.checklistHandler.AddChecklistItem)
	r.mux.HandleFunc("GET /api/cases/{id}/prosthetic-checklist", r.checklistHandler.GetProstheticChecklist)
	r.mux.HandleFunc("PUT /api/cases/{id}/prosthetic-checklist", r.checklistHandler.UpdateProstheticChecklist)
	r.mux.HandleFunc("GET /api/prosthetic-checklist/master", r.checklistHandler.GetMasterChecklist)

	// Reflection and learning endpoints
	r.mux.HandleFunc("PUT /api/cases/{id}/feedback", r.feedbackHandler.UpdateFeedback)
	r.mux.HandleFunc("GET /api/learning/suggestions", r.feedbackHandler.GetSuggestions)

	// Attachment endpoints
	r.mux.HandleFunc("POST /api/cases/{id}/attachments", r.attachmentHandler.AddAttachment)
	r.mux.HandleFunc("DELETE /api/cases/{id}/attachments", r.attachmentHandler.RemoveAttachment)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
