package one

import "strconv"

// Attributes 表示远端对象的原始属性树。
// 叶子节点是 string，嵌套结构是 map[string]any，
// 重复出现的元素（例如 NIC）是 []any。
type Attributes map[string]any

// String 返回指定 key 的文本值
func (a Attributes) String(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// Int 返回指定 key 的整数值（远端所有叶子都是文本，需要解析）
func (a Attributes) Int(key string) (int, bool) {
	s, ok := a[key].(string)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Child 返回指定 key 的嵌套结构
func (a Attributes) Child(key string) (Attributes, bool) {
	switch v := a[key].(type) {
	case Attributes:
		return v, true
	case map[string]any:
		return Attributes(v), true
	}
	return nil, false
}

// List 返回指定 key 的嵌套结构列表。
// 远端对单个元素和多个元素使用不同的表示（单个对象 vs 列表），
// 两种形式都被接受，非嵌套结构的元素被忽略。
func (a Attributes) List(key string) []Attributes {
	switch v := a[key].(type) {
	case Attributes:
		return []Attributes{v}
	case map[string]any:
		return []Attributes{Attributes(v)}
	case []any:
		result := make([]Attributes, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				result = append(result, Attributes(m))
			}
		}
		return result
	}
	return nil
}
