package handlers

import (
	"context"
	"net/http"
	"time"

	dogRepo "pawroute/database/repository/dog"
	"pawroute/middleware"
	"pawroute/models"
	"pawroute/services/storage"
	"pawroute/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DogHandler exposes dog profile endpoints for clients.
type DogHandler struct {
	Repo    dogRepo.DogRepository
	Storage storage.StorageService
}

func NewDogHandler(repo dogRepo.DogRepository, store storage.StorageService) *DogHandler {
	return &DogHandler{Repo: repo, Storage: store}
}

// CreateDog handles POST /api/dogs.
func (h *DogHandler) CreateDog(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var input models.DogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	dog := &models.Dog{
		ID:      uuid.New().String(),
		OwnerID: identity.ID,
		Name:    input.Name,
		Breed:   input.Breed,
		Size:    input.Size,
		Notes:   input.Notes,
	}
	if err := h.Repo.Create(dog); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create dog", err.Error())
		return
	}
	c.JSON(http.StatusCreated, dog)
}

// GetDog handles GET /api/dogs/:id.
func (h *DogHandler) GetDog(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	dog, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "dog not found", err.Error())
		return
	}
	if dog.OwnerID != identity.ID {
		utils.JSONError(c, http.StatusForbidden, "not your dog", "")
		return
	}
	c.JSON(http.StatusOK, dog)
}

// ListMyDogs handles GET /api/dogs.
func (h *DogHandler) ListMyDogs(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	dogs, err := h.Repo.ListByOwner(c.Request.Context(), identity.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list dogs", err.Error())
		return
	}
	c.JSON(http.StatusOK, dogs)
}

// UpdateDog handles PATCH /api/dogs/:id.
func (h *DogHandler) UpdateDog(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	dog, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "dog not found", err.Error())
		return
	}
	if dog.OwnerID != identity.ID {
		utils.JSONError(c, http.StatusForbidden, "not your dog", "")
		return
	}

	var input models.DogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	dog.Name = input.Name
	dog.Breed = input.Breed
	dog.Size = input.Size
	dog.Notes = input.Notes
	if err := h.Repo.Update(dog); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update dog", err.Error())
		return
	}
	c.JSON(http.StatusOK, dog)
}

// UploadDogPhoto handles POST /api/dogs/:id/photo. The photo arrives as
// a multipart form file under the "photo" field.
func (h *DogHandler) UploadDogPhoto(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	dog, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "dog not found", err.Error())
		return
	}
	if dog.OwnerID != identity.ID {
		utils.JSONError(c, http.StatusForbidden, "not your dog", "")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "photo file required", err.Error())
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read photo", err.Error())
		return
	}
	defer file.Close()

	uploadCtx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	url, err := h.Storage.UploadImage(uploadCtx, file, "dogs")
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "upload failed", err.Error())
		return
	}
	if err := h.Repo.SetPhotoURL(c.Request.Context(), dog.ID, url); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save photo URL", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"photoUrl": url})
}

// DeleteDog handles DELETE /api/dogs/:id.
func (h *DogHandler) DeleteDog(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	dog, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "dog not found", err.Error())
		return
	}
	if dog.OwnerID != identity.ID {
		utils.JSONError(c, http.StatusForbidden, "not your dog", "")
		return
	}
	if err := h.Repo.Delete(dog.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete dog", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
