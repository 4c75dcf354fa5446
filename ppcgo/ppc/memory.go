package ppc

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// 4 KiB pages, the smallest page size of the Xenon MMU.
const (
	PageAddrSize = 12
	PageKeySize  = 64 - PageAddrSize
	PageSize     = 1 << PageAddrSize
	PageAddrMask = PageSize - 1
)

type Page [PageSize]byte

func (p *Page) MarshalText() ([]byte, error) {
	return hexutil.Bytes(p[:]).MarshalText()
}

func (p *Page) UnmarshalText(text []byte) error {
	var b hexutil.Bytes
	if err := b.UnmarshalText(text); err != nil {
		return err
	}
	if len(b) != PageSize {
		return fmt.Errorf("expected %d page bytes, got %d", PageSize, len(b))
	}
	copy(p[:], b)
	return nil
}

// Memory is a sparse, big-endian guest address space. Pages are allocated
// on first write; reads of unallocated memory return zeroes.
type Memory struct {
	pages map[uint64]*Page

	// we often fetch instructions from one page and load/store to another:
	// two cached entries avoid a map lookup per access.
	lastPageKeys [2]uint64
	lastPage     [2]*Page

	onWrite func(addr, size uint64)
}

func NewMemory() *Memory {
	return &Memory{
		pages:        make(map[uint64]*Page),
		lastPageKeys: [2]uint64{^uint64(0), ^uint64(0)}, // default to invalid keys, to not match any pages
	}
}

func (m *Memory) PageCount() int {
	return len(m.pages)
}

func (m *Memory) pageLookup(pageIndex uint64) (*Page, bool) {
	if pageIndex == m.lastPageKeys[0] {
		return m.lastPage[0], true
	}
	if pageIndex == m.lastPageKeys[1] {
		return m.lastPage[1], true
	}
	p, ok := m.pages[pageIndex]

	// only cache existing pages.
	if ok {
		m.lastPageKeys[1] = m.lastPageKeys[0]
		m.lastPage[1] = m.lastPage[0]
		m.lastPageKeys[0] = pageIndex
		m.lastPage[0] = p
	}
	return p, ok
}

func (m *Memory) AllocPage(pageIndex uint64) *Page {
	p := new(Page)
	m.pages[pageIndex] = p
	return p
}

// SetWriteHook registers fn to observe every write, after it lands. A nil
// fn removes the hook.
func (m *Memory) SetWriteHook(fn func(addr, size uint64)) {
	m.onWrite = fn
}

// Write copies dat into memory at addr, allocating pages as needed.
func (m *Memory) Write(addr uint64, dat []byte) {
	start, size := addr, uint64(len(dat))
	for len(dat) > 0 {
		pageIndex := addr >> PageAddrSize
		p, ok := m.pageLookup(pageIndex)
		if !ok {
			p = m.AllocPage(pageIndex)
		}
		n := copy(p[addr&PageAddrMask:], dat)
		dat = dat[n:]
		addr += uint64(n)
	}
	if m.onWrite != nil && size > 0 {
		m.onWrite(start, size)
	}
}

// Read fills dest from memory at addr.
func (m *Memory) Read(addr uint64, dest []byte) {
	for len(dest) > 0 {
		pageAddr := addr & PageAddrMask
		var n int
		if p, ok := m.pageLookup(addr >> PageAddrSize); ok {
			n = copy(dest, p[pageAddr:])
		} else {
			n = len(dest)
			if l := int(PageSize - pageAddr); l < n {
				n = l
			}
			clear(dest[:n])
		}
		dest = dest[n:]
		addr += uint64(n)
	}
}

func (m *Memory) Read8(addr uint64) uint8 {
	var b [1]byte
	m.Read(addr, b[:])
	return b[0]
}

func (m *Memory) Read16(addr uint64) uint16 {
	var b [2]byte
	m.Read(addr, b[:])
	return binary.BigEndian.Uint16(b[:])
}

func (m *Memory) Read32(addr uint64) uint32 {
	var b [4]byte
	m.Read(addr, b[:])
	return binary.BigEndian.Uint32(b[:])
}

func (m *Memory) Read64(addr uint64) uint64 {
	var b [8]byte
	m.Read(addr, b[:])
	return binary.BigEndian.Uint64(b[:])
}

func (m *Memory) Write8(addr uint64, v uint8) {
	m.Write(addr, []byte{v})
}

func (m *Memory) Write16(addr uint64, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	m.Write(addr, b[:])
}

func (m *Memory) Write32(addr uint64, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	m.Write(addr, b[:])
}

func (m *Memory) Write64(addr uint64, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	m.Write(addr, b[:])
}

type pageEntry struct {
	Index uint64 `json:"index"`
	Data  *Page  `json:"data"`
}

func (m *Memory) MarshalJSON() ([]byte, error) {
	pages := make([]pageEntry, 0, len(m.pages))
	for k, p := range m.pages {
		pages = append(pages, pageEntry{
			Index: k,
			Data:  p,
		})
	}
	sort.Slice(pages, func(i, j int) bool {
		return pages[i].Index < pages[j].Index
	})
	return json.Marshal(pages)
}

func (m *Memory) UnmarshalJSON(data []byte) error {
	var pages []pageEntry
	if err := json.Unmarshal(data, &pages); err != nil {
		return err
	}
	m.pages = make(map[uint64]*Page)
	m.lastPageKeys = [2]uint64{^uint64(0), ^uint64(0)}
	m.lastPage = [2]*Page{nil, nil}
	for i, p := range pages {
		if _, ok := m.pages[p.Index]; ok {
			return fmt.Errorf("cannot load duplicate page, entry %d, page index %d", i, p.Index)
		}
		if p.Data == nil {
			return fmt.Errorf("missing data of page entry %d, page index %d", i, p.Index)
		}
		m.pages[p.Index] = p.Data
	}
	return nil
}

// SetMemoryRange copies everything r yields into memory starting at addr.
// Only pages that receive data are allocated.
func (m *Memory) SetMemoryRange(addr uint64, r io.Reader) error {
	var buf [PageSize]byte
	for {
		n, err := r.Read(buf[:PageSize-addr&PageAddrMask])
		m.Write(addr, buf[:n])
		addr += uint64(n)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

type memReader struct {
	m     *Memory
	addr  uint64
	count uint64
}

func (r *memReader) Read(dest []byte) (n int, err error) {
	if r.count == 0 {
		return 0, io.EOF
	}
	if uint64(len(dest)) > r.count {
		dest = dest[:r.count]
	}
	r.m.Read(r.addr, dest)
	r.addr += uint64(len(dest))
	r.count -= uint64(len(dest))
	return len(dest), nil
}

// ReadMemoryRange returns a reader over count bytes of memory from addr.
func (m *Memory) ReadMemoryRange(addr uint64, count uint64) io.Reader {
	return &memReader{m: m, addr: addr, count: count}
}

func (m *Memory) Usage() string {
	total := uint64(len(m.pages)) * PageSize
	const unit = 1024
	if total < unit {
		return fmt.Sprintf("%d B", total)
	}
	div, exp := uint64(unit), 0
	for n := total / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	// KiB, MiB, GiB, TiB, ...
	return fmt.Sprintf("%.1f %ciB", float64(total)/float64(div), "KMGTPE"[exp])
}
