package api

import "encoding/json"

// Question is one quiz question. The server never discloses the correct
// answer here; correctness is established per question via CheckAnswer.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

// Lesson is one lesson with its quiz, reward and per-user completion state.
// Immutable once fetched; replaced wholesale on refetch.
type Lesson struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	Quiz          []Question `json:"quiz"`
	QuestionCount int        `json:"question_count"`
	RewardXP      int        `json:"reward_xp"`
	RewardCoins   int        `json:"reward_coins"`
	Completed     bool       `json:"completed"`
	Score         *float64   `json:"score"`
}

// Question returns the question with the given id, or nil.
func (l *Lesson) Question(id string) *Question {
	for i := range l.Quiz {
		if l.Quiz[i].ID == id {
			return &l.Quiz[i]
		}
	}
	return nil
}

// LessonPage is one page of the lesson list.
type LessonPage struct {
	Items      []Lesson `json:"items"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	Total      int      `json:"total"`
	TotalPages int      `json:"total_pages"`
}

// Lesson returns the lesson with the given id on this page, or nil.
func (p *LessonPage) Lesson(id int) *Lesson {
	for i := range p.Items {
		if p.Items[i].ID == id {
			return &p.Items[i]
		}
	}
	return nil
}

// Verdict is the server's correctness judgment for a single answer.
// CorrectAnswer is only disclosed on a wrong answer.
type Verdict struct {
	Correct       bool   `json:"correct"`
	QuestionID    string `json:"question_id"`
	CorrectAnswer string `json:"correct_answer"`
}

// SubmitResult is the graded outcome of a lesson submission.
type SubmitResult struct {
	Completed bool    `json:"completed"`
	Score     float64 `json:"score"`
}

// EquippedItem is a cosmetic item worn by the pet.
type EquippedItem struct {
	ItemID int    `json:"item_id"`
	Name   string `json:"name"`
	Slot   string `json:"slot"`
	Type   string `json:"type"`
}

// Pet is the user's pet as reported by the server. Level and stage are
// server-authoritative; the client never recomputes them.
type Pet struct {
	Name          string         `json:"name"`
	Species       string         `json:"species"`
	Level         int            `json:"level"`
	XPCurrent     int            `json:"xp_current"`
	Stage         string         `json:"stage"`
	Hunger        int            `json:"hunger"`
	EquippedItems []EquippedItem `json:"equipped_items"`
}

// Default policy for optional pet fields, applied once at the decode
// boundary. Older API revisions omit hunger and equipped_items.
const defaultHunger = 100

// UnmarshalJSON applies the optional-field defaults.
func (p *Pet) UnmarshalJSON(data []byte) error {
	type wire struct {
		Name          string         `json:"name"`
		Species       string         `json:"species"`
		Level         int            `json:"level"`
		XPCurrent     int            `json:"xp_current"`
		Stage         string         `json:"stage"`
		Hunger        *int           `json:"hunger"`
		EquippedItems []EquippedItem `json:"equipped_items"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.Name = w.Name
	p.Species = w.Species
	p.Level = w.Level
	p.XPCurrent = w.XPCurrent
	p.Stage = w.Stage
	if w.Hunger != nil {
		p.Hunger = *w.Hunger
	} else {
		p.Hunger = defaultHunger
	}
	p.EquippedItems = w.EquippedItems
	if p.EquippedItems == nil {
		p.EquippedItems = []EquippedItem{}
	}
	return nil
}

// ProfileSnapshot is the authoritative "me" view: balances, XP total and
// pet state.
type ProfileSnapshot struct {
	Email        string  `json:"email"`
	CashBalance  float64 `json:"cash_balance"`
	CoinsBalance int     `json:"coins_balance"`
	XPTotal      int     `json:"xp_total"`
	Pet          Pet     `json:"pet"`
}

// TokenPair is the credential response from login, register and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
