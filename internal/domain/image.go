package domain

import (
	"net/url"
	"strings"

	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
)

// RewriteImageURL 수집 이미지 URL을 상용 이미지 도메인의 URL로 치환합니다.
//
// 수집 이미지의 경로는 버킷 접두어("/img", 4글자)로 시작하므로 이를 떼어내고
// 상용 도메인을 붙입니다. 예:
//
//	http://cdn.example.com/img/products/1.png -> https://image.example.com/products/1.png
func RewriteImageURL(imageDomain, raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", apperrors.Wrapf(err, apperrors.ParsingFailed, "이미지 URL을 해석할 수 없습니다: '%s'", raw)
	}

	path := parsed.Path
	if len(path) > 4 {
		path = path[4:]
	} else {
		path = ""
	}

	return strings.TrimSuffix(imageDomain, "/") + path, nil
}
