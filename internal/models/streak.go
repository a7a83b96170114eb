package models

// Streak хранит текущую и самую длинную серию учебных дней пользователя.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}
