package dto

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Correo     string `json:"correo"`
	Contrasena string `json:"contrasena"`
}

// LoginResponse token de sesión más el tipo de usuario y la cédula del titular.
type LoginResponse struct {
	Token    string `json:"token"`
	UserType string `json:"userType"`
	Cedula   string `json:"cedula,omitempty"`
}

// ForgotPasswordRequest solicitud de enlace de restablecimiento.
type ForgotPasswordRequest struct {
	Correo string `json:"correo"`
}

// ResetPasswordRequest token de restablecimiento y nueva contraseña.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}
