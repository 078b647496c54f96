package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/realestatehub/backend/models"
	"github.com/realestatehub/backend/store"
)

type UpdateSettingsRequest struct {
	SiteName     string `json:"siteName"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	// Pointer so an explicit false is distinguishable from an absent field.
	MaintenanceMode *bool `json:"maintenanceMode"`
}

func GetSettings(settings store.SettingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setting, err := settings.Get(r.Context())
		if err != nil {
			if err == store.ErrNotFound {
				respondError(w, http.StatusNotFound, "Settings not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Error fetching settings", err)
			return
		}

		respondData(w, http.StatusOK, "", setting)
	}
}

// UpdateSettings upserts the settings singleton. Absent fields keep their
// prior values; maintenanceMode is only overwritten when explicitly sent.
func UpdateSettings(settings store.SettingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateSettingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request payload", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
			return
		}

		setting, err := settings.Get(r.Context())
		if err == store.ErrNotFound {
			setting = &models.Setting{
				SiteName:  models.DefaultSiteName,
				CreatedAt: time.Now(),
			}
			err = nil
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error updating settings", err)
			return
		}

		if req.SiteName != "" {
			setting.SiteName = req.SiteName
		}
		if req.ContactEmail != "" {
			setting.ContactEmail = req.ContactEmail
		}
		if req.MaintenanceMode != nil {
			setting.MaintenanceMode = *req.MaintenanceMode
		}
		setting.UpdatedAt = time.Now()

		if err := settings.Save(r.Context(), setting); err != nil {
			respondError(w, http.StatusInternalServerError, "Error updating settings", err)
			return
		}

		respondData(w, http.StatusOK, "Settings updated successfully", setting)
	}
}

// ResetSettings deletes the singleton; a later read returns 404 until the
// record is recreated by an update.
func ResetSettings(settings store.SettingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := settings.Delete(r.Context()); err != nil {
			respondError(w, http.StatusInternalServerError, "Error resetting settings", err)
			return
		}

		respondJSON(w, http.StatusOK, Response{Success: true, Message: "Settings reset to default"})
	}
}
