package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingSheet UserState = "awaiting_sheet" // Ожидание фото бланка
	StateProcessing    UserState = "processing"     // Распознавание бланка
)

// User представляет пользователя бота
type User struct {
	ID         int64         // Telegram User ID
	ChatID     int64         // Telegram Chat ID
	State      UserState     // Текущее состояние пользователя
	LastResult *DecodeResult // Последний распознанный бланк
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// Remember запоминает результат последнего распознавания
func (u *User) Remember(result *DecodeResult) {
	u.LastResult = result
}
