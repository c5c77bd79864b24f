// Package wisdom selects daily and random quotes from a static corpus.
// The corpus draws on 《渔樵问对》 and 《宇宙意识论》; entries are
// immutable and only ever selected, never created or mutated.
package wisdom

import "tianji/internal/bazi"

// Category groups quotes by theme.
type Category string

const (
	Philosophy  Category = "philosophy"
	Cultivation Category = "cultivation"
	Universe    Category = "universe"
	Mind        Category = "mind"
	Nature      Category = "nature"
)

// Quote is one immutable corpus entry.
type Quote struct {
	ID       string       `json:"id"`
	Content  string       `json:"content"`
	Source   string       `json:"source"`
	Category Category     `json:"category"`
	Element  bazi.Element `json:"element,omitempty"`
	Context  string       `json:"context,omitempty"`
}

// corpus is the full quote pool. Order matters: deterministic daily
// selection indexes into this slice.
var corpus = []Quote{
	{"yq001", "天地之道，阴阳而已；阴阳之道，动静而已。", "《渔樵问对》", Universe, bazi.Earth,
		"宇宙的本质是阴阳二气的运化，动静相生，此为大道之根本。"},
	{"yq002", "鱼可钓而取，亦可网而取；钓可一鱼，网可千鱼。", "《渔樵问对》", Philosophy, bazi.Water,
		"方法不同，所得各异。修道亦然，法门万千，贵在选择适合自己的道路。"},
	{"yq003", "无心则无意，无意则无我，无我则与天地合其德。", "《渔樵问对》", Mind, bazi.Wood,
		"放下执念，达到无我之境，方能与天地同频，感应大道。"},
	{"yq004", "万物皆有理，顺之则吉，逆之则凶。", "《渔樵问对》", Philosophy, bazi.Metal,
		"天地运行有其规律，修道者当顺应天道，不可强求逆势而为。"},
	{"yq005", "日往则月来，月往则日来，日月相推而明生焉。", "《渔樵问对》", Nature, bazi.Fire,
		"阴阳交替，循环往复。修炼亦需动静结合，张弛有度。"},
	{"yq006", "观乎天文，以察时变；观乎人文，以化成天下。", "《渔樵问对》", Cultivation, bazi.Earth,
		"上观天象以知时运，下察己心以修心性，内外兼修，方得大道。"},
	{"yq007", "一阴一阳之谓道，继之者善也，成之者性也。", "《渔樵问对》", Universe, bazi.Earth,
		"阴阳调和即为道，顺应天道为善，成就本性为真。"},
	{"yq008", "形而上者谓之道，形而下者谓之器。", "《渔樵问对》", Philosophy, bazi.Metal,
		"道是无形之理，器是有形之物。修炼重在心悟，非止于形。"},
	{"yq009", "天地之大德曰生，圣人之大宝曰位。", "《渔樵问对》", Nature, bazi.Wood,
		"天地以生养万物为德，修行者当惜生、养生、生生不息。"},
	{"yq010", "穷理尽性，以至于命。", "《渔樵问对》", Cultivation, bazi.Fire,
		"穷尽事物之理，尽己之性，方能通达天命，此为修真三要。"},
	{"yq011", "物物而不物于物，则神全矣。", "《渔樵问对》", Mind, bazi.Water,
		"驾驭外物而不被外物所困，精神方能完满，不为俗事所累。"},
	{"yq012", "天地与我并生，而万物与我为一。", "《渔樵问对》", Universe, bazi.Earth,
		"天人合一之境，破除我执，与宇宙意识相连，万法归一。"},
	{"yq013", "静而与阴同德，动而与阳同波。", "《渔樵问对》", Cultivation, bazi.Earth,
		"静时如阴般柔顺，动时如阳般刚健，动静合宜，阴阳调和。"},
	{"yq014", "道者，万物之所系，而众生之所由也。", "《渔樵问对》", Universe, bazi.Metal,
		"道是万物的根源，众生皆由道而生，回归本源即是修真。"},
	{"yq015", "知止而后有定，定而后能静，静而后能安。", "《渔樵问对》", Mind, bazi.Water,
		"知道止境方能坚定，坚定方能宁静，宁静方能安稳，此为修心次第。"},
	{"yq016", "气者，神之母；神者，气之子。", "《渔樵问对》", Cultivation, bazi.Fire,
		"气为神之本，神为气之用。炼气养神，相辅相成，不可偏废。"},
	{"yq017", "五行之理，相生相克，循环无端。", "《渔樵问对》", Universe, bazi.Earth,
		"金木水火土相生相克，如环无端。修真当明五行之理，调和体内之气。"},
	{"yq018", "至虚极，守静笃，万物并作，吾以观复。", "《渔樵问对》", Mind, bazi.Water,
		"达到虚无之境，守住宁静之本，观万物循环往复，此乃入定之法。"},
	{"yq019", "日出而作，日入而息，逍遥于天地之间。", "《渔樵问对》", Nature, bazi.Wood,
		"顺应自然规律，与天地同步，此为养生之要，亦是修真之法。"},
	{"yq020", "大智若愚，大巧若拙，大音希声，大象无形。", "《渔樵问对》", Philosophy, bazi.Metal,
		"真正的智慧看似愚钝，真正的灵巧看似笨拙。大道至简，返璞归真。"},
	{"cq001", "宇宙即意识，意识即宇宙。修行非向外求，乃是向内归。", "《宇宙意识论》", Universe, bazi.Earth,
		"万物皆由宇宙意识所化，修真即是与宇宙本源意识重新连接。"},
	{"cq002", "灵根非天赋，乃心识之频率。调频者，可与天地共振。", "《宇宙意识论》", Cultivation, bazi.Wood,
		"灵根不是先天注定，而是心识状态。修心即是修灵根。"},
	{"cq003", "丹田者，能量之漩涡也。呼吸之间，宇宙能量聚于此。", "《宇宙意识论》", Cultivation, bazi.Fire,
		"丹田是身体能量中心，通过呼吸吐纳吸收宇宙能量。"},
	{"cq004", "境由心造，界由识分。破识见界，方入化神。", "《宇宙意识论》", Mind, bazi.Water,
		"境界的界限来自于意识的分辨。超越分辨心，方能突破境界。"},
	{"cq005", "日月精华，天地之馈赠。子时练功，事半功倍。", "《宇宙意识论》", Cultivation, bazi.Fire,
		"子时一阳初生，是修炼的最佳时机，顺应天时效率倍增。"},
	{"cq006", "五行相生，如环无端。体内五行调和，则百病不侵。", "《宇宙意识论》", Universe, bazi.Earth,
		"体内五行能量平衡是健康与修炼的基础。"},
	{"cq007", "因果非天定，乃心识之轨迹。改变心识，即改因果。", "《宇宙意识论》", Philosophy, bazi.Metal,
		"因果不是宿命，而是心识运行的规律。修真可改命。"},
	{"cq008", "呼吸是桥梁，连接有形与无形。调息即是调心。", "《宇宙意识论》", Cultivation, bazi.Wood,
		"呼吸是连接身体与能量的桥梁，调息是修炼的基础。"},
	{"cq009", "执念如锁，放下即钥匙。无我无相，方见真我。", "《宇宙意识论》", Mind, bazi.Water,
		"放下执念才能解脱束缚，见到真正的自己。"},
	{"cq010", "大道至简，复归于朴。返璞归真，便是成仙。", "《宇宙意识论》", Philosophy, bazi.Earth,
		"最高的道理最简单，回归质朴即是得道。"},
}

// All returns the full corpus. The returned slice is shared; callers
// must not mutate it.
func All() []Quote {
	return corpus
}
