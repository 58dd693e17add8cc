package discovery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Reference 模型在数据块中引用的图书
// 只有ID会被信任,标题和书店由Reconciler从数据库重新读取
type Reference struct {
	ID          uint
	Title       string
	BookstoreID uint
}

// Split 模型输出的拆分结果
type Split struct {
	Answer     string
	References []Reference
	Err        error // 数据块解析失败的原因,只用于日志
}

// IDs 引用的图书ID(保持顺序)
func (s Split) IDs() []uint {
	ids := make([]uint, 0, len(s.References))
	for _, ref := range s.References {
		ids = append(ids, ref.ID)
	}
	return ids
}

// SplitResponse 将模型输出拆分为自然语言回答和引用列表
// 1. 取第一个开始标记,以及其后的第一个结束标记
// 2. 没有开始标记:全文即回答
// 3. 有开始标记但没有结束标记:开始标记之前的文本为回答,无引用
// 4. 数据块解析失败不返回错误,回答照常返回,引用为空
func SplitResponse(raw string) Split {
	start := strings.Index(raw, StartMarker)
	if start < 0 {
		return Split{Answer: strings.TrimSpace(raw)}
	}

	result := Split{Answer: strings.TrimSpace(raw[:start])}
	rest := raw[start+len(StartMarker):]
	end := strings.Index(rest, EndMarker)
	if end < 0 {
		result.Err = fmt.Errorf("缺少结束标记%s", EndMarker)
		return result
	}

	refs, err := parseReferences(rest[:end])
	if err != nil {
		result.Err = err
		return result
	}
	result.References = refs
	return result
}

// stripCodeFence 去掉```json ... ```包裹
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "[{") {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

// parseReferences 宽松解析: 字段名不区分大小写,id可以是数字或数字字符串
func parseReferences(payload string) ([]Reference, error) {
	payload = stripCodeFence(payload)
	if payload == "" {
		return nil, nil
	}

	var items []map[string]json.RawMessage
	data := []byte(payload)
	if bytes.HasPrefix(data, []byte("{")) {
		var single map[string]json.RawMessage
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("解析推荐数据失败: %w", err)
		}
		items = append(items, single)
	} else if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("解析推荐数据失败: %w", err)
	}

	refs := make([]Reference, 0, len(items))
	seen := make(map[uint]struct{}, len(items))
	for _, item := range items {
		fields := make(map[string]json.RawMessage, len(item))
		for k, v := range item {
			fields[strings.ToLower(k)] = v
		}

		id, ok := parseUint(fields["id"])
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		ref := Reference{ID: id}
		_ = json.Unmarshal(fields["title"], &ref.Title)
		if storeID, ok := parseUint(fields["bookstoreid"]); ok {
			ref.BookstoreID = storeID
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// parseUint 解析正整数: 1、1.0、"1"都视为1
func parseUint(raw json.RawMessage) (uint, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	text := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = strings.TrimSpace(unquoted)
	}
	if n, err := strconv.ParseUint(text, 10, 64); err == nil && n > 0 {
		return uint(n), true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f <= 0 || f != float64(uint64(f)) {
		return 0, false
	}
	return uint(f), true
}
