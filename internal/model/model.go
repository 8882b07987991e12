package model

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
	Team string `json:"team"`
}

type ClockActionRequest struct {
	Date string `json:"date"`
	Time string `json:"time"` // HH:MM, defaults to now
}

type PermissionRequest struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes" binding:"min=0"`
	Locked  bool   `json:"locked"`
}

type AddEntryRequest struct {
	Date    string `json:"date"`
	Details string `json:"details"`
}

type UpdateEntryRequest struct {
	Date  string `json:"date"`
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type SaveLogRequest struct {
	Date string `json:"date"`
}
