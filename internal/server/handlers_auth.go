package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type logoutRequest struct {
	SessionToken string `json:"session_token"`
}

func (s *Server) registerAuthRoutes(rateLimiter echo.MiddlewareFunc) {
	auth := s.echo.Group("/api/auth", rateLimiter)
	auth.POST("/register", s.handleRegister)
	auth.POST("/login", s.handleLogin)
	auth.POST("/logout", s.handleLogout)
	auth.POST("/admin/login", s.handleAdminLogin)
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	userID, err := s.auth.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	response := map[string]any{
		"success": true,
		"message": "User registered successfully",
		"user_id": userID,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	token, err := s.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	response := map[string]any{
		"success":       true,
		"message":       "Login successful",
		"session_token": token,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleLogout(c echo.Context) error {
	var req logoutRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	if err := s.auth.Logout(c.Request().Context(), req.SessionToken); err != nil {
		return err
	}

	response := map[string]any{
		"success": true,
		"message": "Logout successful",
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleAdminLogin(c echo.Context) error {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	token, err := s.auth.AdminLogin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	response := map[string]any{
		"success":       true,
		"message":       "Admin login successful",
		"session_token": token,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
