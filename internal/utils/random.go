package utils

import (
	"fmt"
	"math/rand"

	"golang.org/x/crypto/bcrypt"

	"github.com/dotr-dev/vehicle-booking/backend/internal/domain"
)

var digits = "0123456789"
var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")
var upperLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ" // no I or O, they read like digits

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}

// GenerateReferenceCode builds the public booking reference printed on the
// confirmation email, e.g. VB-XKQT-2931.
func GenerateReferenceCode() string {
	code := make([]byte, 0, 12)
	code = append(code, 'V', 'B', '-')
	for i := 0; i < 4; i++ {
		code = append(code, upperLetters[rand.Intn(len(upperLetters))])
	}
	code = append(code, '-')
	for i := 0; i < 4; i++ {
		code = append(code, digits[rand.Intn(len(digits))])
	}
	return string(code)
}

var firstNames = []string{
	"Abel", "Bruk", "Daniel", "Elias", "Hanna", "Kebede", "Lidya", "Marta",
	"Natnael", "Samuel", "Sara", "Tadesse", "Tigist", "Yared", "Yohannes",
}
var lastNames = []string{
	"Abebe", "Bekele", "Demissie", "Girma", "Haile", "Kassa", "Lemma",
	"Mengistu", "Tesfaye", "Wolde",
}

func GenerateRandomFullName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

func GenerateRandomUsername(fullName string) string {
	username := ""
	for _, r := range fullName {
		if r == ' ' {
			continue
		}
		username += string(r | 0x20)
	}
	if len(username) > 8 {
		username = username[:8]
	}
	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}
	return username
}

var organizations = []string{
	"Horizon Freight PLC", "Blue Nile Transport", "Addis Logistics",
	"Unity Bus Lines", "Sheger Haulage", "Great Rift Carriers",
}

func GenerateRandomOrganization() string {
	return organizations[rand.Intn(len(organizations))]
}

func GenerateRandomPhone() string {
	phone := "+2519"
	for i := 0; i < 8; i++ {
		phone += string(digits[rand.Intn(len(digits))])
	}
	return phone
}

var roles = []domain.Role{
	domain.RoleOfficer,
	domain.RoleSupervisor,
	domain.RoleAdmin,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := GenerateRandomUsername(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}
