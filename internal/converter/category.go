package converter

import (
	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
)

// 카테고리 ID 상수 (선언 순서가 분류 동점 처리의 우선순위입니다)
const (
	CategoryDrink          = 1
	CategoryAlcohol        = 2
	CategorySnack          = 3
	CategoryIceCream       = 4
	CategoryNoodle         = 5
	CategoryLunchBox       = 6
	CategorySalad          = 7
	CategoryKimbab         = 8
	CategorySandwich       = 9
	CategoryBread          = 10
	CategoryFood           = 11
	CategoryHouseholdGoods = 12
)

// categoryEntry 카테고리 이름과 ID의 대응입니다.
type categoryEntry struct {
	name string
	id   int
}

// categoryTable 카테고리 변환 테이블입니다. 선언 순서가 곧 카테고리 우선순위입니다.
var categoryTable = []categoryEntry{
	{name: "Drink", id: CategoryDrink},
	{name: "Alcohol", id: CategoryAlcohol},
	{name: "Snack", id: CategorySnack},
	{name: "Ice Cream", id: CategoryIceCream},
	{name: "Noodle", id: CategoryNoodle},
	{name: "Lunch Box", id: CategoryLunchBox},
	{name: "Salad", id: CategorySalad},
	{name: "Kimbab", id: CategoryKimbab},
	{name: "Sandwich", id: CategorySandwich},
	{name: "Bread", id: CategoryBread},
	{name: "Food", id: CategoryFood},
	{name: "Household Goods", id: CategoryHouseholdGoods},
}

// CategoryIDs 카테고리 ID를 선언 순서대로 반환합니다.
func CategoryIDs() []int {
	ids := make([]int, 0, len(categoryTable))
	for _, entry := range categoryTable {
		ids = append(ids, entry.id)
	}
	return ids
}

// CategoryID 카테고리 이름에 대응하는 ID를 반환합니다.
func CategoryID(name string) (int, error) {
	for _, entry := range categoryTable {
		if entry.name == name {
			return entry.id, nil
		}
	}
	return 0, apperrors.Newf(apperrors.NotFound, "카테고리 '%s'가 정의되어 있지 않습니다", name)
}

// CategoryName 카테고리 ID에 대응하는 이름을 반환합니다.
func CategoryName(id int) (string, error) {
	for _, entry := range categoryTable {
		if entry.id == id {
			return entry.name, nil
		}
	}
	return "", apperrors.Newf(apperrors.NotFound, "카테고리 ID %d가 정의되어 있지 않습니다", id)
}
