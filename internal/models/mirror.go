package models

// MirrorField поле, которое дублируется между Account и Profile.
type MirrorField string

const (
	FieldUsername    MirrorField = "username"
	FieldIsVerified  MirrorField = "is_verified"
	FieldIsPromotion MirrorField = "is_promotion"
)

// MirrorFields все зеркалируемые поля в порядке сравнения.
var MirrorFields = []MirrorField{FieldIsVerified, FieldIsPromotion, FieldUsername}

// Mirror зеркалируемая часть аккаунта или профиля.
type Mirror struct {
	Username    string
	IsVerified  bool
	IsPromotion bool
}
