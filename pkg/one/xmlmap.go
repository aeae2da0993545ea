package one

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Decode 把远端返回的 XML 文档解析成属性树。
// 返回根元素的内容（不含根元素本身这一层）。
// 同名兄弟元素合并为列表；同时包含文本和子元素的元素，
// 其文本内容记在 "#text" 键下。
func Decode(body string) (Attributes, error) {
	dec := xml.NewDecoder(strings.NewReader(body))

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("no root element in document")
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}

		if se, ok := tok.(xml.StartElement); ok {
			value, err := decodeElement(dec, se)
			if err != nil {
				return nil, fmt.Errorf("failed to parse document: %w", err)
			}
			if m, ok := value.(map[string]any); ok {
				return Attributes(m), nil
			}
			// 根元素只有文本内容
			return Attributes{}, nil
		}
	}
}

// decodeElement 递归解析一个元素，返回 string 或 map[string]any
func decodeElement(dec *xml.Decoder, start xml.StartElement) (any, error) {
	children := make(map[string]any)
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}

			name := t.Name.Local
			if existing, ok := children[name]; ok {
				// 同名兄弟元素升级为列表
				if list, ok := existing.([]any); ok {
					children[name] = append(list, child)
				} else {
					children[name] = []any{existing, child}
				}
			} else {
				children[name] = child
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			content := strings.TrimSpace(text.String())
			if len(children) == 0 {
				return content, nil
			}
			if content != "" {
				children["#text"] = content
			}
			return children, nil
		}
	}
}
