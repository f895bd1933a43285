package product

import (
	"strings"

	"github.com/pyoniverse/etl-transform/internal/converter"
)

// categoryKeywords 카테고리 하나에 대응하는 키워드 목록입니다.
type categoryKeywords struct {
	category int
	keywords []string
}

// tagKeywordTable 수집 태그의 정확 일치로 카테고리를 찾는 테이블입니다.
// 태그는 각 편의점의 자체 분류 체계에서 온 값이라 표기가 제각각입니다.
var tagKeywordTable = []categoryKeywords{
	{converter.CategoryDrink, []string{
		"냉장커피", "커피음료", "가공유", "음료", "에너지음료", "원컵류", "커피차류",
		"분말커피류", "커피차", "차류", "디카페인", "원컵",
	}},
	{converter.CategoryAlcohol, nil},
	{converter.CategorySnack, []string{
		"냉장디저트", "디저트", "스낵", "과자류", "토이캔디", "상온디저트", "기능성캔디",
		"비스켓", "쿠키", "캔디", "간식",
	}},
	{converter.CategoryIceCream, []string{
		"아이스크림",
	}},
	{converter.CategoryNoodle, []string{
		"조리면", "용기면", "봉지면", "면류", "냉장면", "건면",
	}},
	{converter.CategoryLunchBox, []string{
		"도시락", "덮밥류",
	}},
	{converter.CategorySalad, []string{
		"샐러드",
	}},
	{converter.CategoryKimbab, []string{
		"삼각김밥", "주먹밥",
	}},
	{converter.CategorySandwich, []string{
		"샌드위치", "햄버거",
	}},
	{converter.CategoryBread, []string{
		"빵", "즉석빵", "베이커리",
	}},
	{converter.CategoryFood, []string{
		"간편식사", "건강기능식품", "의약건강기능", "즉석식", "가공식사", "냉장분식류",
		"마른안주류", "안주류", "간편식", "냉장안주", "과일", "식재료", "육가공류",
		"냉동간편식", "햄", "소시지", "수프류", "스프류", "가공란", "마른안주",
		"수산안주", "국", "탕", "찌개", "농산안주", "죽", "수산안주류", "냉동만두",
		"조미소스", "조미료류", "냉동즉석식", "즉석밥류", "핫바", "찌개류", "분말커피",
		"햄소시지", "안주", "축산안주", "가공식품", "반찬류", "김치류", "대용식",
		"치즈", "육포", "즉석밥", "국밥류", "야채", "밑반찬", "소스류", "두부",
		"덮밥", "생란", "달걀", "계란", "분식류", "국밥", "김치", "김", "통조림",
		"과일통조림", "국탕찌개", "즉석요리류", "식사대용", "식용유", "얼음", "HEYROO",
		"육가공", "편육", "즉석요리", "냉동밥", "유가공품류", "반숙란", "채소", "유부",
		"핫바류", "조미료", "가루류", "냉장분식", "농산식재료", "냉동식품", "기타대용식",
		"가공식", "치즈 및 유가공품류", "사료", "반려동물용품", "맛살", "오뎅", "양곡",
		"맛남의광장", "과일. 식재료", "어묵", "유제품",
	}},
	{converter.CategoryHouseholdGoods, []string{
		"문구류", "생활잡화", "샴푸린스", "신변잡화", "패션의류", "의류용품", "목욕세면",
		"여행용세트",
	}},
}

// nameKeywordTable 정규화된 상품명에 대한 부분 문자열 검색으로 카테고리를 찾는 테이블입니다.
var nameKeywordTable = []categoryKeywords{
	{converter.CategoryDrink, []string{
		"콤푸차", "음료", "드링크", "워터", "ml", "l", "아메리카노", "라떼", "우유",
	}},
	{converter.CategoryAlcohol, []string{
		"술", "맥주", "라거", "비어", "소주",
	}},
	{converter.CategorySnack, []string{
		"쿠키", "약과", "칩", "과자", "스낵", "젤리", "스틱", "초코콘", "딸기별",
		"오감자", "푸딩", "초코렛타", "나쵸", "꾸이깡", "프레첼", "팝콘", "초코볼",
		"누네띠네", "자일리톨", "새콤달콤",
	}},
	{converter.CategoryIceCream, []string{
		"수박바", "폴라포", "파르페", "쿨샷스포츠", "빵빠레", "스크류바", "옥동자",
		"와일드바디", "왕수박바", "죠스바", "돼지바",
	}},
	{converter.CategoryNoodle, []string{
		"라면", "스파게티", "파스타", "소바", "막국수", "국수", "짬뽕", "당면",
	}},
	{converter.CategoryLunchBox, []string{
		"도시락", "비빔밥", "볶음밥", "덮밥",
	}},
	{converter.CategorySalad, []string{
		"샐러드", "셀러드",
	}},
	{converter.CategoryKimbab, []string{
		"삼각", "삼각김밥", "김밥", "주먹밥",
	}},
	{converter.CategorySandwich, []string{
		"버거", "샌드", "샌드위치", "더블빅불고기", "머핀",
	}},
	{converter.CategoryBread, []string{
		"베이글", "티라미수", "케익", "바닐라슈", "모찌롤", "휘낭시에", "타르트", "빵",
		"까눌레", "도넛", "파이",
	}},
	{converter.CategoryHouseholdGoods, []string{
		"바디워시", "핑크솔트", "스타킹", "테이프", "복사지", "노트", "밴드", "멀티탭",
		"슬리퍼", "우의", "종이컵", "스타킹", "장갑", "이력서", "수세미", "호일",
		"샤워볼", "접착제", "컷터칼", "면도기", "비누", "컵", "휴지", "양말", "팬티",
		"셔츠", "제트스트림", "네일", "메디폼", "이어폰", "케이블", "화장솜", "팬츠",
		"풋커버", "유성매직", "네임펜", "이쑤시개", "크린", "지퍼", "젓가락", "행주",
		"삭스", "칼", "가위", "돗자리", "매트", "티슈", "봉투", "잘풀리는집",
		"생리대", "좋은느낌", "컨디셔너", "삼푸", "가글", "페브리즈", "다우니", "피죤",
		"치약", "칫솔", "순면", "표백", "여행", "바디워시",
	}},
}

// Classify 태그, 상품명, 사전 카테고리 힌트로부터 카테고리 ID를 추론합니다.
//
// 투표 방식으로 동작합니다. 태그 테이블의 정확 일치 1건, 상품명 키워드의 부분 일치
// 1건, 사전 힌트 1건이 각각 해당 카테고리에 한 표씩을 던지고, 최다 득표 카테고리가
// 선택됩니다. 득표 수가 같으면 카테고리 선언 순서가 빠른 쪽이 이깁니다.
//
// 단 한 표도 없으면 ok=false를 반환합니다. 카테고리 없음은 유효한 결과이며,
// 기본 카테고리로 대체하지 않습니다.
func Classify(tags []string, name string, hints []int) (categoryID int, ok bool) {
	votes := make(map[int]int)

	for _, tag := range tags {
		for _, entry := range tagKeywordTable {
			for _, keyword := range entry.keywords {
				if keyword == tag {
					votes[entry.category]++
				}
			}
		}
	}

	normalized := NormalizeName(name)
	for _, entry := range nameKeywordTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(normalized, keyword) {
				votes[entry.category]++
			}
		}
	}

	for _, hint := range hints {
		votes[hint]++
	}

	best, bestVotes := 0, 0
	for _, id := range converter.CategoryIDs() {
		if votes[id] > bestVotes {
			best, bestVotes = id, votes[id]
		}
	}

	if bestVotes == 0 {
		return 0, false
	}
	return best, true
}
