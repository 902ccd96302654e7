package models

import (
	"strings"
	"time"
)

// Gender values accepted on a profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Italian proficiency levels collected during onboarding.
const (
	LevelWeak     = "weak"
	LevelGood     = "good"
	LevelVeryGood = "very_good"
	LevelNative   = "native"
)

// Account roles.
const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Interface language settings.
const (
	LanguageArabic  = "ar"
	LanguageItalian = "it"
	LanguageBoth    = "both"
)

// Progress holds the learner's accumulated study statistics.
type Progress struct {
	Level            int      `bson:"level" json:"level"`
	XP               int      `bson:"xp" json:"xp"`
	TotalQuizzes     int      `bson:"total_quizzes" json:"total_quizzes"`
	CurrentStreak    int      `bson:"current_streak" json:"current_streak"`
	ExamReadiness    int      `bson:"exam_readiness" json:"exam_readiness"`
	CorrectAnswers   int      `bson:"correct_answers" json:"correct_answers"`
	WrongAnswers     int      `bson:"wrong_answers" json:"wrong_answers"`
	CompletedLessons []string `bson:"completed_lessons" json:"completed_lessons"`
	Badges           []string `bson:"badges" json:"badges"`
}

// Accuracy returns the percentage of correct answers, rounded to the
// nearest whole number. Zero when no questions have been answered yet.
func (p Progress) Accuracy() int {
	total := p.CorrectAnswers + p.WrongAnswers
	if total == 0 {
		return 0
	}
	return int(float64(p.CorrectAnswers)/float64(total)*100 + 0.5)
}

// Settings holds per-user preferences.
type Settings struct {
	Language string `bson:"language" json:"language"`
}

type User struct {
	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`

	FirstName string `bson:"first_name" json:"first_name"`
	LastName  string `bson:"last_name" json:"last_name"`
	Name      string `bson:"name" json:"name"`
	Username  string `bson:"username,omitempty" json:"username,omitempty"`
	Bio       string `bson:"bio,omitempty" json:"bio,omitempty"`

	Email     string `bson:"email" json:"email"`
	PhoneCode string `bson:"phone_code,omitempty" json:"phone_code,omitempty"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`

	Gender       string `bson:"gender,omitempty" json:"gender,omitempty"`
	BirthDate    string `bson:"birth_date,omitempty" json:"birth_date,omitempty"`
	Country      string `bson:"country,omitempty" json:"country,omitempty"`
	Province     string `bson:"province,omitempty" json:"province,omitempty"`
	ItalianLevel string `bson:"italian_level,omitempty" json:"italian_level,omitempty"`

	Role             string `bson:"role" json:"role"`
	PrivacyHideStats bool   `bson:"privacy_hide_stats" json:"privacy_hide_stats"`
	ProfileComplete  bool   `bson:"profile_complete" json:"profile_complete"`

	// Avatar is either an inline data URI or an object-storage URL,
	// depending on which ingester the server was started with.
	Avatar string `bson:"avatar,omitempty" json:"avatar,omitempty"`

	Password string `bson:"password" json:"-"` // Don't return password hash in JSON

	// Set only when the corresponding field actually changed value.
	NameChangeDate     *time.Time `bson:"name_change_date,omitempty" json:"name_change_date,omitempty"`
	UsernameChangeDate *time.Time `bson:"username_change_date,omitempty" json:"username_change_date,omitempty"`

	Progress Progress `bson:"progress" json:"progress"`
	Settings Settings `bson:"settings" json:"settings"`
}

// FullName joins first and last name the way the profile editor does.
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// IsAdmin reports whether the user has elevated permissions.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

// ValidGender reports whether g is a known gender value.
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale
}

// ValidItalianLevel reports whether lvl is a known proficiency level.
func ValidItalianLevel(lvl string) bool {
	switch lvl {
	case LevelWeak, LevelGood, LevelVeryGood, LevelNative:
		return true
	}
	return false
}

// ValidLanguage reports whether lang is a known interface language.
func ValidLanguage(lang string) bool {
	switch lang {
	case LanguageArabic, LanguageItalian, LanguageBoth:
		return true
	}
	return false
}
