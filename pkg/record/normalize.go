package record

import (
	"strings"

	"github.com/jimyag/one-inventory/pkg/one"
)

// Normalize 把远端返回的嵌套属性树拍平为小写 key 的字符串映射。
// 规则：
//   - "#text" 标记（XML 文本内容的包装字段）被跳过
//   - 非空字符串字段保留，key 转小写
//   - 嵌套结构递归处理，结果合并进同一个输出
//   - 空字符串和其他类型的值被丢弃
//
// 纯函数，没有副作用；畸形输入只会得到更少的 key，不会报错。
func Normalize(raw one.Attributes) map[string]string {
	result := make(map[string]string)

	for key, value := range raw {
		if key == "#text" {
			continue
		}

		switch v := value.(type) {
		case string:
			if v != "" {
				result[strings.ToLower(key)] = v
			}
		case one.Attributes:
			for nk, nv := range Normalize(v) {
				result[nk] = nv
			}
		case map[string]any:
			for nk, nv := range Normalize(one.Attributes(v)) {
				result[nk] = nv
			}
		}
	}

	return result
}
