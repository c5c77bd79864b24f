package bazi

import "fmt"

// RootType classifies a spiritual root by how many elements dominate
// the tally.
type RootType string

const (
	RootSingle    RootType = "single"    // 天灵根: one element only
	RootDouble    RootType = "double"    // 双灵根: two elements, rest zero
	RootTriple    RootType = "triple"    // 三灵根
	RootQuadruple RootType = "quadruple" // 四灵根
	RootQuintuple RootType = "quintuple" // 伪灵根: all five present
	RootVariant   RootType = "variant"   // 变异灵根: special combinations
)

// SpiritualRoot is the classification derived from one tally plus its
// originating chart.
type SpiritualRoot struct {
	Type             RootType `json:"type"`
	Name             string   `json:"name"`
	PrimaryElement   Element  `json:"primaryElement"`
	SecondaryElement Element  `json:"secondaryElement,omitempty"`
	VariantType      string   `json:"variantType,omitempty"`
	Bonus            float64  `json:"bonus"`
	Description      string   `json:"description"`
}

// rootBonus is the single canonical bonus table. Two diverging constant
// sets existed historically; this one is kept because it pairs with the
// threshold set below (single ≥4, double ≥2/≥2).
var rootBonus = map[RootType]float64{
	RootSingle:    1.5,
	RootDouble:    1.2,
	RootTriple:    1.0,
	RootQuadruple: 0.9,
	RootQuintuple: 0.8,
	RootVariant:   1.3,
}

const (
	singleRootThreshold = 4 // minimum count for 天灵根
	doubleRootThreshold = 2 // minimum count per element for 双灵根
)

// variantPair describes a count-based variant trigger: two elements in
// a generative pair both strong while the two opposing elements are
// absent entirely.
type variantPair struct {
	a, b       Element // both must be ≥ doubleRootThreshold
	za, zb     Element // both must be zero
	variant    string
	primary    Element
	flavorText string
}

// variantPairs are checked in fixed order, first match wins.
var variantPairs = []variantPair{
	{Metal, Water, Wood, Fire, "冰", Water, "金水相生，变异为冰灵根，修炼冰系功法威力倍增"},
	{Wood, Fire, Metal, Water, "雷", Fire, "木火相生，变异为雷灵根，修炼雷系功法威力倍增"},
	{Fire, Earth, Metal, Water, "炎", Fire, "火土相生，变异为炎灵根，修炼火系功法威力倍增"},
	{Earth, Metal, Wood, Water, "磁", Metal, "土金相生，变异为磁灵根，修炼金系功法威力倍增"},
	{Water, Wood, Metal, Fire, "风", Wood, "水木相生，变异为风灵根，修炼木系功法威力倍增"},
}

// variantTriad describes a branch-pattern variant trigger (三会局):
// three specific branches present together in the chart.
type variantTriad struct {
	branches []string
	variant  string
	primary  Element
}

var variantTriads = []variantTriad{
	{[]string{"寅", "卯", "辰"}, "风", Wood},
	{[]string{"巳", "午", "未"}, "雷", Fire},
	{[]string{"申", "酉", "戌"}, "冰", Water},
}

// earthTriadBranches trigger the 磁 variant when at least three of the
// four earth branches appear.
var earthTriadBranches = []string{"辰", "戌", "丑", "未"}

// Classify derives the spiritual root from a tally and its chart.
// Rules form an ordered decision list, first match wins: variants
// (count pairs, then branch patterns), then single through quintuple by
// distinct-element count. Exactly one rule applies for every tally, so
// the function is total.
func Classify(tally Tally, chart Chart) SpiritualRoot {
	if root, ok := classifyVariant(tally, chart); ok {
		return root
	}

	ranked := tally.Ranked()
	primary := ranked[0]
	secondary := ranked[1]
	nonZero := tally.NonZero()

	if tally.Count(primary) >= singleRootThreshold && nonZero == 1 {
		return SpiritualRoot{
			Type:           RootSingle,
			Name:           "天灵根·" + string(primary),
			PrimaryElement: primary,
			Bonus:          rootBonus[RootSingle],
			Description:    fmt.Sprintf("%s行独盛，万年难遇的修仙奇才，修炼%s系功法事半功倍", primary, primary),
		}
	}

	if tally.Count(primary) >= doubleRootThreshold &&
		tally.Count(secondary) >= doubleRootThreshold &&
		tally.Count(ranked[2]) == 0 {
		return SpiritualRoot{
			Type:             RootDouble,
			Name:             fmt.Sprintf("双灵根·%s%s", primary, secondary),
			PrimaryElement:   primary,
			SecondaryElement: secondary,
			Bonus:            rootBonus[RootDouble],
			Description:      fmt.Sprintf("%s%s双灵根，两种属性相辅相成，修炼%s系和%s系功法有加成", primary, secondary, primary, secondary),
		}
	}

	switch nonZero {
	case 3:
		third := ranked[2]
		return SpiritualRoot{
			Type:             RootTriple,
			Name:             fmt.Sprintf("三灵根·%s%s%s", primary, secondary, third),
			PrimaryElement:   primary,
			SecondaryElement: secondary,
			Bonus:            rootBonus[RootTriple],
			Description:      fmt.Sprintf("%s%s%s三灵根，属性平衡，修炼速度正常", primary, secondary, third),
		}
	case 4:
		return SpiritualRoot{
			Type:           RootQuadruple,
			Name:           fmt.Sprintf("四灵根·%s为主", primary),
			PrimaryElement: primary,
			Bonus:          rootBonus[RootQuadruple],
			Description:    "四灵根，属性驳杂，修炼进度较慢，需要更多资源",
		}
	default:
		return SpiritualRoot{
			Type:           RootQuintuple,
			Name:           "五灵根",
			PrimaryElement: primary,
			Bonus:          rootBonus[RootQuintuple],
			Description:    "伪灵根，五行俱全却无一精通，修炼艰难，但若能大成可修五行神通",
		}
	}
}

// classifyVariant runs both variant-detection mechanisms in fixed
// order. The two rule sets are not equivalent and are deliberately kept
// as independent checks.
func classifyVariant(tally Tally, chart Chart) (SpiritualRoot, bool) {
	for _, p := range variantPairs {
		if tally.Count(p.a) >= doubleRootThreshold && tally.Count(p.b) >= doubleRootThreshold &&
			tally.Count(p.za) == 0 && tally.Count(p.zb) == 0 {
			return variantRoot(p.variant, p.primary, p.flavorText), true
		}
	}

	branches := make(map[string]bool, 4)
	for _, p := range chart.Pillars() {
		branches[p.Branch] = true
	}

	for _, tr := range variantTriads {
		all := true
		for _, b := range tr.branches {
			if !branches[b] {
				all = false
				break
			}
		}
		if all {
			desc := fmt.Sprintf("地支三会，变异为%s灵根，兼具两种特性，修炼天赋异禀", tr.variant)
			return variantRoot(tr.variant, tr.primary, desc), true
		}
	}

	earthCount := 0
	for _, p := range chart.Pillars() {
		for _, b := range earthTriadBranches {
			if p.Branch == b {
				earthCount++
				break
			}
		}
	}
	if earthCount >= 3 {
		return variantRoot("磁", Metal, "辰戌丑未会土局，变异为磁灵根，修炼天赋异禀"), true
	}

	return SpiritualRoot{}, false
}

func variantRoot(variant string, primary Element, desc string) SpiritualRoot {
	return SpiritualRoot{
		Type:           RootVariant,
		Name:           "变异灵根·" + variant,
		PrimaryElement: primary,
		VariantType:    variant,
		Bonus:          rootBonus[RootVariant],
		Description:    desc,
	}
}
