package httpx

import (
	"net/http"
	"time"

	"github.com/gamevault/authcore/internal/domain/auth"
	"github.com/gamevault/authcore/internal/service"
)

// AdminHandlers serves CRUD on the staff admin directory. Routes are gated
// by RequirePermission(PermManageStaff) at registration.
type AdminHandlers struct {
	Directory *service.Directory
}

type adminListResponse struct {
	Admins  []auth.AdminRecord `json:"admins"`
	Stale   bool               `json:"stale"`
	StaleAt *time.Time         `json:"staleAt,omitempty"`
}

type adminWriteRequest struct {
	SteamID   string `json:"steamId"`
	StaffName string `json:"staffName"`
	StaffRole string `json:"staffRole"`
}

type adminPatchRequest struct {
	StaffName *string `json:"staffName"`
	StaffRole *string `json:"staffRole"`
}

// List returns every admin, flagged when served from the availability
// mirror instead of the live backend.
func (h *AdminHandlers) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.Directory.List(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	resp := adminListResponse{Admins: res.Records, Stale: res.Stale}
	if resp.Admins == nil {
		resp.Admins = []auth.AdminRecord{}
	}
	if res.Stale && !res.StaleAt.IsZero() {
		resp.StaleAt = &res.StaleAt
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Add inserts or updates an admin. Roles are normalized on write so the
// directory never accumulates synonym spellings.
func (h *AdminHandlers) Add(w http.ResponseWriter, r *http.Request) {
	var req adminWriteRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	rec, err := h.Directory.Add(r.Context(), auth.AdminRecord{
		SteamID:   req.SteamID,
		StaffName: req.StaffName,
		StaffRole: auth.NormalizeRole(req.StaffRole, auth.RoleStaff),
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, rec)
}

// Update applies a partial update to an admin identified by path.
func (h *AdminHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req adminPatchRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	patch := auth.AdminRecordPatch{StaffName: req.StaffName}
	if req.StaffRole != nil {
		role := auth.NormalizeRole(*req.StaffRole, auth.RoleStaff)
		patch.StaffRole = &role
	}

	rec, err := h.Directory.Update(r.Context(), r.PathValue("steamId"), patch)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rec)
}

// Remove deletes an admin. Removing the last admin is refused with 409.
func (h *AdminHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.Directory.Remove(r.Context(), r.PathValue("steamId")); err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
