package domain

// Явные «намерения обновления»: nil-поле — не трогать.
// Единственное место, где интерпретируются опциональные поля апдейтов.

type PostPatch struct {
	Title    *string
	Content  *string
	ImageRef *string // новая ссылка на картинку (уже сохранённую)
}

func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.ImageRef == nil
}

type ProfilePatch struct {
	Nickname *string
	ImageRef *string
}

func (p ProfilePatch) IsEmpty() bool {
	return p.Nickname == nil && p.ImageRef == nil
}

// Хелперы для сборки патчей из запросов
func PatchString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
