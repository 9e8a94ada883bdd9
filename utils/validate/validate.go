package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	cErr "backoffice/internal/pkg/error"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Messages DTO 可自訂錯誤訊息，key 為 "<json 路徑>.<規則>"，例如 "workplace.kind.oneof"
type Messages interface {
	Messages() map[string]string
}

var indexPattern = regexp.MustCompile(`\[\d+\]`)

// ValidationErrorResponse 格式化 validator error（json 路徑/型別/規則）
func ValidationErrorResponse(obj any, err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Sprintf("Validation error: %s", err.Error())
	}
	var custom map[string]string
	if m, ok := obj.(Messages); ok {
		custom = m.Messages()
	}
	var b strings.Builder
	b.WriteString("Validation error:\n")
	for _, fe := range errs {
		path, typ, rules := describe(obj, fe.StructNamespace())
		if msg, ok := custom[indexPattern.ReplaceAllString(path, "")+"."+fe.Tag()]; ok {
			fmt.Fprintf(&b, " - %s\n", msg)
			continue
		}
		fmt.Fprintf(&b, " - Field \"%s\" (type: %s) failed the '%s' validation (rules: %v)\n", path, typ, fe.Tag(), rules)
	}
	return b.String()
}

// describe 沿著 "Type.Field.Sub" 走訪結構，回傳 json 路徑、欄位型別與 binding 規則
func describe(obj any, namespace string) (path, typ string, rules []string) {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	t := reflect.TypeOf(obj)
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		for t != nil && t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if t == nil || t.Kind() != reflect.Struct {
			names = append(names, part)
			continue
		}
		field, index, _ := strings.Cut(part, "[")
		if index != "" {
			index = "[" + index
		}
		f, ok := t.FieldByName(field)
		if !ok {
			names = append(names, part)
			t = nil
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			name = f.Name
		}
		names = append(names, name+index)
		typ = f.Type.String()
		rules = nil
		if tag := f.Tag.Get("binding"); tag != "" {
			rules = strings.Split(tag, ",")
		}
		t = f.Type
	}
	return strings.Join(names, "."), typ, rules
}

// ParseID 路徑參數必須是正整數
func ParseID(c *gin.Context, key string) (id int64, cause error, responseErr error) {
	id, err := strconv.ParseInt(c.Param(key), 10, 64)
	if err != nil {
		return 0, err, cErr.ValidatePathParamsErr("invalid " + key)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive", key), cErr.ValidatePathParamsErr("invalid " + key)
	}
	return id, nil, nil
}

func BindAndValidate(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindJSON(req); err != nil {
		return err, cErr.ValidateErr(ValidationErrorResponse(req, err))
	}
	return nil, nil
}

func GetInt64Query(c *gin.Context, key string, defaultVal int64) (int64, error) {
	if v := c.Query(key); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return n, nil
	}
	return defaultVal, nil
}

// GetBoolQuery 無法解析時回傳預設值
func GetBoolQuery(c *gin.Context, key string, defaultVal bool) bool {
	if v := c.Query(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}
