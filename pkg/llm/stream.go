package llm

import (
	"bytes"
	"encoding/json"
	"strings"
)

// 事件流帧格式约定：每行一个帧，`data: ` 前缀承载 JSON 负载，
// 负载为 "[DONE]" 时表示流结束；`:` 开头为注释帧，直接忽略。
const (
	dataPrefix   = "data: "
	doneSentinel = "[DONE]"
)

// streamDecoder 把任意切分的字节块重组为完整的文本行。
// 只在 '\n' 处切分，未收尾的字节（包括被截断的多字节字符）留在缓冲区，
// 等后续 chunk 到达后再继续拼接，不会丢弃看似残缺的行。
type streamDecoder struct {
	buf []byte
}

// feed appends one chunk and returns every line completed by it, in order.
// A trailing '\r' is trimmed from each line.
func (d *streamDecoder) feed(p []byte) []string {
	d.buf = append(d.buf, p...)

	var lines []string
	for {
		idx := bytes.IndexByte(d.buf, '\n')
		if idx < 0 {
			break
		}
		line := d.buf[:idx]
		d.buf = d.buf[idx+1:]
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		lines = append(lines, string(line))
	}
	return lines
}

// tail 返回流结束后缓冲区里残留的最后一行（流没有以换行符收尾时出现）。
func (d *streamDecoder) tail() string {
	line := d.buf
	d.buf = nil
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return string(line)
}

// parseFrame classifies one complete line of the event stream.
//
// done is true when the line is the termination sentinel; no further deltas
// follow it. ok is true when the line was a well-formed data frame; delta is
// then the incremental text it carried (possibly empty — role-only and
// metadata frames carry no content, which is not an error). Blank lines,
// comment frames and malformed payloads come back with ok=false and are
// simply skipped by the caller.
func parseFrame(line string) (delta string, done bool, ok bool) {
	if line == "" || strings.HasPrefix(line, ":") {
		return "", false, false
	}
	if !strings.HasPrefix(line, dataPrefix) {
		return "", false, false
	}

	payload := strings.TrimPrefix(line, dataPrefix)
	if strings.TrimSpace(payload) == doneSentinel {
		return "", true, false
	}

	var chunk chatResponse
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return "", false, false
	}
	if len(chunk.Choices) == 0 {
		return "", false, true
	}
	return chunk.Choices[0].Delta.Content, false, true
}
