package leaderboard

type Category string

const (
	CategoryMostPoured      Category = "most_poured"
	CategoryCityConnoisseur Category = "city_connoisseur"
	CategoryBarHopper       Category = "bar_hopper"
)

// Titles granted to the rank-1 entry of each category. A user can hold
// several at once.
const (
	TitleMostPoured      = "Martini Monarch"
	TitleCityConnoisseur = "City Connoisseur"
	TitleBarHopper       = "Bar Baron"
)

type Entry struct {
	Rank       int     `json:"rank"`
	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	UserAvatar string  `json:"user_avatar"`
	Value      float64 `json:"value"`
	Label      string  `json:"label"`
	Title      string  `json:"title,omitempty"`
}

type Leaderboards struct {
	MostPoured      []*Entry `json:"most_poured"`
	CityConnoisseur []*Entry `json:"city_connoisseur"`
	BarHopper       []*Entry `json:"bar_hopper"`
}
