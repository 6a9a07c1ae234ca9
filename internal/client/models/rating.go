package models

// Tier is a Codeforces rank band.
type Tier struct {
	Name  string
	Short string
	// Color is a hex colour used by the terminal renderer.
	Color string
}

var tiers = []struct {
	min  int
	tier Tier
}{
	{3000, Tier{"Legendary Grandmaster", "Legendary", "#DC2626"}},
	{2600, Tier{"International Grandmaster", "Intl. GM", "#EF4444"}},
	{2400, Tier{"Grandmaster", "GM", "#F87171"}},
	{2100, Tier{"International Master", "IM", "#FB923C"}},
	{1900, Tier{"Master", "Master", "#A78BFA"}},
	{1600, Tier{"Expert", "Expert", "#60A5FA"}},
	{1400, Tier{"Specialist", "Specialist", "#22D3EE"}},
	{1200, Tier{"Pupil", "Pupil", "#4ADE80"}},
}

var (
	newbie  = Tier{"Newbie", "Newbie", "#9CA3AF"}
	unrated = Tier{"Unrated", "Unrated", "#9CA3AF"}
)

// TierFor maps a rating to its band. Zero means unrated.
func TierFor(rating int) Tier {
	if rating <= 0 {
		return unrated
	}
	for _, t := range tiers {
		if rating >= t.min {
			return t.tier
		}
	}
	return newbie
}
