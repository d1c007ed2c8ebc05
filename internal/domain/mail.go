package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type BookingConfirmationMailData struct {
	ApplicantName string            `json:"applicantName"`
	Code          string            `json:"code"`
	VehicleCount  int32             `json:"vehicleCount"`
	Bookings      []BookingMailLine `json:"bookings"`
}

type BookingMailLine struct {
	Service      string `json:"service"`
	Date         string `json:"date"`
	TimeLabel    string `json:"timeLabel"`
	VehicleCount int32  `json:"vehicleCount"`
}

type BookingCancelledMailData struct {
	ApplicantName string `json:"applicantName"`
	Code          string `json:"code"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}
