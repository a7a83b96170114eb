package models

// Preferences — учебные предпочтения пользователя, присланные из формы.
// Используются для построения запроса к генеративной модели.
type Preferences struct {
	Goal        string  `validate:"required,max=500"`
	Subjects    string  `validate:"required,max=500"`
	Methods     string  `validate:"max=500"`
	Deadline    int     `validate:"required,gt=0,lte=365"`
	DailyTime   float64 `validate:"required,gt=0,lte=24"`
	Slots       string  `validate:"max=500"`
	Flexibility string  `validate:"max=500"`
	Remarks     string  `validate:"max=1000"`
}
