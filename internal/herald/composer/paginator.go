package composer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type pageState int

const (
	stateFilling pageState = iota
	stateSealed
)

const truncationMark = "…"

// paginator accumulates lines into messages of at most maxLen runes. A buffer is sealed
// exactly when the next line would overflow it.
type paginator struct {
	maxLen      int
	maxMessages int

	messages []string
	lines    []string
	length   int
	// elastic counts the trailing lines of the open buffer that may be withdrawn.
	elastic int
	state   pageState
}

func newPaginator(maxLen, maxMessages int) *paginator {
	return &paginator{maxLen: maxLen, maxMessages: maxMessages, state: stateSealed}
}

// fits reports whether line can join the open buffer.
func (p *paginator) fits(line string) bool {
	return p.length+p.separator()+utf8.RuneCountInString(line) <= p.maxLen
}

func (p *paginator) separator() int {
	if len(p.lines) == 0 {
		return 0
	}
	return 1
}

func (p *paginator) push(line string) {
	p.state = stateFilling
	p.length += p.separator() + utf8.RuneCountInString(line)
	p.lines = append(p.lines, line)
}

func (p *paginator) pop() {
	last := p.lines[len(p.lines)-1]
	p.lines = p.lines[:len(p.lines)-1]
	p.length -= utf8.RuneCountInString(last) + p.separator()
}

// seal closes the open buffer. An empty buffer never becomes a message.
func (p *paginator) seal() {
	if len(p.lines) > 0 {
		p.messages = append(p.messages, strings.Join(p.lines, "\n"))
	}
	p.lines = nil
	p.length = 0
	p.elastic = 0
	p.state = stateSealed
}

// Fixed adds a line that is never dropped. A line longer than a whole message is cut.
func (p *paginator) Fixed(line string) {
	line = truncate(line, p.maxLen)
	if !p.fits(line) {
		p.seal()
	}
	p.push(line)
	p.elastic = 0
}

// onLastMessage reports whether opening another buffer would exceed maxMessages.
func (p *paginator) onLastMessage() bool {
	if p.maxMessages <= 0 {
		return false
	}
	open := 0
	if p.state == stateFilling {
		open = 1
	}
	return len(p.messages)+open >= p.maxMessages
}

// Elastic adds lines that may be cut short. When the message budget runs out the rest
// is summarized as "...and N more", withdrawing already placed elastic lines if the
// notice would not fit otherwise.
func (p *paginator) Elastic(lines []string) {
	for i, line := range lines {
		line = truncate(line, p.maxLen)
		if p.fits(line) {
			p.push(line)
			p.elastic++
			continue
		}
		if !p.onLastMessage() {
			p.seal()
			p.push(line)
			p.elastic = 1
			continue
		}
		p.summarize(len(lines) - i)
		return
	}
}

func (p *paginator) summarize(remaining int) {
	for !p.fits(moreNotice(remaining)) && p.elastic > 0 {
		p.pop()
		p.elastic--
		remaining++
	}
	notice := moreNotice(remaining)
	if !p.fits(notice) {
		// fixed lines filled the last allowed message; the notice takes one more
		p.seal()
	}
	p.push(notice)
}

// Messages seals the open buffer and returns every message.
func (p *paginator) Messages() []string {
	p.seal()
	return p.messages
}

func moreNotice(n int) string {
	return fmt.Sprintf("...and %d more", n)
}

// truncate cuts s to at most maxLen runes, marking the cut.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-utf8.RuneCountInString(truncationMark)]) + truncationMark
}
