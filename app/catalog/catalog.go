package catalog

import "strings"

// Product is a single fixed catalog entry. The catalog is read-only at
// runtime, so products are passed around by value.
type Product struct {
	Name      string   `json:"name"`
	Brand     string   `json:"brand"`
	Price     int      `json:"price"`
	Rating    float64  `json:"rating"`
	Reviews   int      `json:"reviews"`
	Rank      int      `json:"rank"`
	Tags      []string `json:"tags"`
	Colors    []string `json:"colors"`
	ReviewOne string   `json:"review_one"`
	Img       string   `json:"img"`
}

func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}

	return false
}

var products = []Product{
	{Name: "Anker Soundcore Q45", Brand: "Anker", Price: 179000, Rating: 4.4, Reviews: 1600, Rank: 8, Tags: []string{"가성비", "배터리", "노이즈캔슬링", "편안함"}, ReviewOne: "가격 대비 성능이 훌륭하고 배터리가 길어요.", Colors: []string{"블랙", "화이트", "네이비"}, Img: "https://raw.githubusercontent.com/doingsilvr/Shoppingagent/main/shoppingagent/img/Anker%20Soundcore%20Q45.jpg"},
	{Name: "JBL Tune 770NC", Brand: "JBL", Price: 99000, Rating: 4.4, Reviews: 2300, Rank: 9, Tags: []string{"가벼움", "음질", "노이즈캔슬링", "편안함"}, ReviewOne: "가볍고 음질이 좋다는 평이 많아요.", Colors: []string{"블랙", "화이트", "퍼플", "네이비"}, Img: "https://raw.githubusercontent.com/doingsilvr/Shoppingagent/main/shoppingagent/img/JBL%20Tune%20770NC.png"},
	{Name: "Sony WH-CH720N", Brand: "Sony", Price: 129000, Rating: 4.5, Reviews: 2100, Rank: 6, Tags: []string{"노이즈캔슬링", "가벼움", "무난한 음질"}, ReviewOne: "경량이라 출퇴근용으로 좋다는 후기가 많아요.", Colors: []string{"블랙", "화이트", "블루"}, Img: "https://raw.githubusercontent.com/doingsilvr/Shoppingagent/main/shoppingagent/img/Sony%20WH-CH720N.jpg"},
	{Name: "Bose QC45", Brand: "Bose", Price: 420000, Rating: 4.7, Reviews: 2800, Rank: 2, Tags: []string{"가벼움", "착용감", "노이즈캔슬링", "편안함"}, ReviewOne: "장시간 써도 귀가 편하다는 리뷰가 많아요.", Colors: []string{"블랙"}, Img: "https://raw.githubusercontent.com/doingsilvr/Shoppingagent/main/shoppingagent/img/Bose%20QC45.jpg"},
	{Name: "Sony WH-1000XM5", Brand: "Sony", Price: 210000, Rating: 4.8, Reviews: 3200, Rank: 1, Tags: []string{"노이즈캔슬링", "음질", "착용감", "통화품질"}, ReviewOne: "소음 많은 환경에서 확실히 조용해진다는 평가.", Colors: []string{"핑크"}, Img: "https://raw.githubusercontent.com/doingsilvr/Shoppingagent/main/shoppingagent/img/Sony%20WH-1000XM5.jpg"},
	{Name: "Apple AirPods Max", Brand: "Apple", Price: 679000, Rating: 4.6, Reviews: 1500, Rank: 3, Tags: []string{"브랜드", "노이즈캔슬링", "트렌디", "디자인", "고급"}, ReviewOne: "깔끔한 디자인과 가벼운 무게로 만족도가 높아요.", Colors: []string{"실버", "스페이스그레이"}, Img: "https://raw.githubusercontent.com/doingsilvr/Shoppingagent/main/shoppingagent/img/Apple%20Airpods%20Max.jpeg"},
	{Name: "Sennheiser PXC 550-II", Brand: "Sennheiser", Price: 289000, Rating: 4.3, Reviews: 1200, Rank: 7, Tags: []string{"착용감", "여행", "배터리", "노이즈캔슬링"}, ReviewOne: "여행 시 장시간 착용에도 압박감이 덜해요.", Colors: []string{"블랙"}, Img: "https://raw.githubusercontent.com/doingsilvr/Shoppingagent/main/shoppingagent/img/Sennheiser%20PXC%2055.jpeg"},
	{Name: "AKG Y600NC", Brand: "AKG", Price: 149000, Rating: 4.2, Reviews: 1800, Rank: 10, Tags: []string{"균형 음질", "가성비", "노이즈캔슬링"}, ReviewOne: "가격대비 깔끔하고 균형 잡힌 사운드가 좋아요.", Colors: []string{"블랙", "골드", "네이비"}, Img: "https://raw.githubusercontent.com/doingsilvr/Shoppingagent/main/shoppingagent/img/AKG%20Y6.jpg"},
	{Name: "Microsoft Surface Headphones 2", Brand: "Microsoft", Price: 319000, Rating: 4.5, Reviews: 900, Rank: 11, Tags: []string{"업무", "통화품질", "디자인", "노이즈캔슬링"}, ReviewOne: "업무용으로 완벽하며 통화 품질이 매우 깨끗합니다.", Colors: []string{"화이트", "블랙"}, Img: "https://raw.githubusercontent.com/doingsilvr/Shoppingagent/main/shoppingagent/img/Microsoft%20Surface%20Headphones%202.jpeg"},
	{Name: "Bose Noise Cancelling Headphones 700", Brand: "Bose", Price: 490000, Rating: 4.7, Reviews: 2500, Rank: 4, Tags: []string{"노이즈캔슬링", "배터리", "음질", "프리미엄"}, ReviewOne: "노이즈캔슬링 성능과 음질을 모두 갖춘 최고급 프리미엄 제품.", Colors: []string{"블랙", "화이트"}, Img: "https://raw.githubusercontent.com/doingsilvr/Shoppingagent/main/shoppingagent/img/Bose%20Headphones%20700.jpg"},
}

// Products returns a copy of the catalog in its fixed iteration order.
func Products() []Product {
	result := make([]Product, len(products))
	copy(result, products)

	return result
}

// Find returns the catalog entry with the given name.
func Find(name string) (Product, bool) {
	for _, p := range products {
		if p.Name == name {
			return p, true
		}
	}

	return Product{}, false
}

// BriefFeature is the short badge text shown next to a candidate card.
func BriefFeature(p Product) string {
	tagsStr := strings.Join(p.Tags, " ")

	switch {
	case strings.Contains(tagsStr, "가성비"):
		return "가성비 인기"
	case p.Rank <= 3:
		return "이달 판매 상위"
	case strings.Contains(tagsStr, "디자인"):
		return "디자인 강점"
	default:
		return "실속형 추천"
	}
}
