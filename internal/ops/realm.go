package ops

// Realm is one stage of the progression ladder.
type Realm struct {
	Name        string `json:"name"`
	Level       int    `json:"level"`
	ExpRequired int    `json:"expRequired"` // exp to break through to the next realm
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// realms is the progression ladder, lowest first. The final realm has
// no successor; exp accumulates there without further breakthroughs.
var realms = []Realm{
	{Name: "炼气", Level: 1, ExpRequired: 100, Icon: "🌱", Description: "引气入体，打熬身体"},
	{Name: "筑基", Level: 2, ExpRequired: 500, Icon: "🌿", Description: "凝气成液，筑就道基"},
	{Name: "金丹", Level: 3, ExpRequired: 2000, Icon: "💎", Description: "凝液成丹，脱胎换骨"},
	{Name: "元婴", Level: 4, ExpRequired: 8000, Icon: "👶", Description: "丹破婴生，神识大成"},
	{Name: "化神", Level: 5, ExpRequired: 30000, Icon: "✨", Description: "婴化元神，通天彻地"},
}

// Realms returns the ladder, lowest first.
func Realms() []Realm {
	out := make([]Realm, len(realms))
	copy(out, realms)
	return out
}

// FirstRealm is where every chart starts.
func FirstRealm() Realm {
	return realms[0]
}

// realmByName resolves a realm; unknown names map to the first realm so
// corrupt state degrades instead of panicking.
func realmByName(name string) Realm {
	for _, r := range realms {
		if r.Name == name {
			return r
		}
	}
	return realms[0]
}

// nextRealm returns the realm after r, or r itself at the top.
func nextRealm(r Realm) Realm {
	for i, cand := range realms {
		if cand.Name == r.Name && i+1 < len(realms) {
			return realms[i+1]
		}
	}
	return r
}

// advance applies gained exp to a realm position, performing as many
// breakthroughs as the exp covers. Returns the final realm, leftover
// exp within it, and the number of breakthroughs.
func advance(current Realm, currentExp, gained float64) (Realm, float64, int) {
	exp := currentExp + gained
	breakthroughs := 0
	for exp >= float64(current.ExpRequired) {
		next := nextRealm(current)
		if next.Name == current.Name {
			// Top realm: exp accumulates without a cap
			break
		}
		exp -= float64(current.ExpRequired)
		current = next
		breakthroughs++
	}
	return current, exp, breakthroughs
}
