package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
	"github.com/Priyan1011/remote-interview-platform/internal/repositories"
	"github.com/Priyan1011/remote-interview-platform/internal/utils"
)

const tokenTTL = 24 * time.Hour

// AuthHandler manages authentication endpoints.
type AuthHandler struct {
	Repo      *repositories.UserRepository
	JWTSecret string
}

func NewAuthHandler(repo *repositories.UserRepository) *AuthHandler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev"
	}
	return &AuthHandler{Repo: repo, JWTSecret: secret}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "invalid_request", "Username, email and password are required")
		return
	}
	role := req.Role
	switch role {
	case "":
		role = models.RoleCandidate
	case models.RoleCandidate, models.RoleInterviewer:
	default:
		utils.JSONError(w, http.StatusBadRequest, "invalid_role", "Role must be candidate or interviewer")
		return
	}

	if existing, _ := h.Repo.GetUserByUsername(req.Username); existing != nil {
		utils.JSONError(w, http.StatusConflict, "username_taken", "Username is already in use")
		return
	}
	if existing, _ := h.Repo.GetUserByEmail(req.Email); existing != nil {
		utils.JSONError(w, http.StatusConflict, "email_taken", "Email is already in use")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Failed to hash password")
		return
	}
	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		Name:         req.Name,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := h.Repo.CreateUser(user); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Failed to create user")
		return
	}
	utils.JSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}
	user, err := h.Repo.GetUserByUsername(req.Username)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password")
		return
	}

	signed, err := utils.GenerateToken(h.JWTSecret, user.ID, user.Role, tokenTTL)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Failed to sign token")
		return
	}
	utils.JSON(w, http.StatusOK, authResponse{Token: signed, User: *user})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, err := utils.VerifyToken(r, h.JWTSecret)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid_token", "Invalid or expired token")
		return
	}
	idStr, err := utils.GetUserIDFromClaims(claims)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid_token", "Invalid or expired token")
		return
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid_token", "Invalid or expired token")
		return
	}
	user, err := h.Repo.GetUserByID(uint(id))
	if err != nil {
		utils.JSONError(w, http.StatusNotFound, "not_found", "User not found")
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
