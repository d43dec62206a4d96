package api

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/service"
	"alcyxob/gym-app/internal/storage"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateExerciseRequest defines the expected JSON for creating an exercise.
type CreateExerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	MuscleGroup string `json:"muscleGroup" binding:"omitempty"` // e.g., "Chest", "Legs"
	Equipment   string `json:"equipment" binding:"omitempty"`   // e.g., "Barbell"
	Difficulty  string `json:"difficulty" binding:"omitempty"`
}

type VideoUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"` // e.g., "video/mp4"
}

type ConfirmVideoRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

type VideoURLResponse struct {
	URL string `json:"url"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID          string    `json:"id"`
	CreatedBy   string    `json:"createdBy"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	MuscleGroup string    `json:"muscleGroup,omitempty"`
	Equipment   string    `json:"equipment,omitempty"`
	Difficulty  string    `json:"difficulty,omitempty"`
	HasVideo    bool      `json:"hasVideo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:          ex.ID.Hex(),
		CreatedBy:   ex.CreatedBy.Hex(),
		Name:        ex.Name,
		Description: ex.Description,
		MuscleGroup: ex.MuscleGroup,
		Equipment:   ex.Equipment,
		Difficulty:  ex.Difficulty,
		HasVideo:    ex.VideoKey != "",
		CreatedAt:   ex.CreatedAt,
		UpdatedAt:   ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateExercise godoc
// @Summary Create a new exercise
// @Description Adds an exercise to the gym catalogue.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse "Exercise created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 409 {object} gin.H "Conflict (name already used)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	createdBy, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), createdBy, service.ExerciseInput{
		Name:        req.Name,
		Description: req.Description,
		MuscleGroup: req.MuscleGroup,
		Equipment:   req.Equipment,
		Difficulty:  req.Difficulty,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// ListExercises godoc
// @Summary List the exercise catalogue
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ExerciseResponse "List of exercises"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExercise godoc
// @Summary Get one exercise
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ID"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid exercise ID"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{exerciseId} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exerciseID, ok := exerciseIDParam(c)
	if !ok {
		return
	}
	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), exerciseID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// RequestVideoUploadURL godoc
// @Summary Get a presigned URL to upload a demonstration video
// @Description The client PUTs the file to uploadUrl with the same Content-Type, then calls video-confirm with objectKey.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ID"
// @Param request body VideoUploadURLRequest true "Video content type"
// @Success 200 {object} service.UploadURLResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Exercise not found"
// @Failure 503 {object} gin.H "Storage not configured"
// @Router /exercises/{exerciseId}/video-upload-url [post]
func (h *ExerciseHandler) RequestVideoUploadURL(c *gin.Context) {
	exerciseID, ok := exerciseIDParam(c)
	if !ok {
		return
	}
	var req VideoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	resp, err := h.exerciseService.RequestVideoUploadURL(c.Request.Context(), exerciseID, req.ContentType)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmVideoUpload godoc
// @Summary Link an uploaded video to the exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ID"
// @Param request body ConfirmVideoRequest true "Object key returned by video-upload-url"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid object key"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{exerciseId}/video-confirm [post]
func (h *ExerciseHandler) ConfirmVideoUpload(c *gin.Context) {
	exerciseID, ok := exerciseIDParam(c)
	if !ok {
		return
	}
	var req ConfirmVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.ConfirmVideoUpload(c.Request.Context(), exerciseID, req.ObjectKey)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// GetVideoURL godoc
// @Summary Get a temporary download URL for the demonstration video
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ID"
// @Success 200 {object} VideoURLResponse
// @Failure 404 {object} gin.H "Exercise or video not found"
// @Router /exercises/{exerciseId}/video-url [get]
func (h *ExerciseHandler) GetVideoURL(c *gin.Context) {
	exerciseID, ok := exerciseIDParam(c)
	if !ok {
		return
	}
	url, err := h.exerciseService.GetVideoURL(c.Request.Context(), exerciseID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, VideoURLResponse{URL: url})
}

func (h *ExerciseHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, service.ErrInvalidVideoKey),
		errors.Is(err, storage.ErrInvalidContentType):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExerciseNotFound), errors.Is(err, service.ErrVideoNotUploaded):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExerciseExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrStorageNotAvailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "Failed to process exercise request.")
	}
}

func exerciseIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return primitive.NilObjectID, false
	}
	return id, true
}
