package ppc

import (
	"math/rand"
	"testing"
)

const (
	smallDataset  = 1_000
	mediumDataset = 100_000
	largeDataset  = 1_000_000
)

func BenchmarkMemoryOperations(b *testing.B) {
	benchmarks := []struct {
		name string
		fn   func(b *testing.B, m *Memory)
	}{
		{"RandomReadWrite_Small", benchRandomReadWrite(smallDataset)},
		{"RandomReadWrite_Medium", benchRandomReadWrite(mediumDataset)},
		{"RandomReadWrite_Large", benchRandomReadWrite(largeDataset)},
		{"SequentialReadWrite_Small", benchSequentialReadWrite(smallDataset)},
		{"SequentialReadWrite_Large", benchSequentialReadWrite(largeDataset)},
		{"SparseMemoryUsage", benchSparseMemoryUsage},
		{"DenseMemoryUsage", benchDenseMemoryUsage},
		{"InstructionFetch", benchInstructionFetch},
		{"PageCrossingWords", benchPageCrossingWords},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			m := NewMemory()
			b.ResetTimer()
			bm.fn(b, m)
		})
	}
}

func benchRandomReadWrite(size int) func(b *testing.B, m *Memory) {
	return func(b *testing.B, m *Memory) {
		addresses := make([]uint64, size)
		for i := range addresses {
			addresses[i] = rand.Uint64() &^ 7
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			addr := addresses[i%len(addresses)]
			if i%2 == 0 {
				m.Write64(addr, uint64(i))
			} else {
				_ = m.Read64(addr)
			}
		}
	}
}

func benchSequentialReadWrite(size int) func(b *testing.B, m *Memory) {
	return func(b *testing.B, m *Memory) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			addr := uint64(i%size) * 8
			if i%2 == 0 {
				m.Write64(addr, uint64(i))
			} else {
				_ = m.Read64(addr)
			}
		}
	}
}

func benchSparseMemoryUsage(b *testing.B, m *Memory) {
	for i := 0; i < b.N; i++ {
		addr := uint64(i) * 10_000_000 // Large gaps between addresses
		m.Write64(addr, uint64(i))
	}
}

func benchDenseMemoryUsage(b *testing.B, m *Memory) {
	for i := 0; i < b.N; i++ {
		addr := uint64(i) * 8 // Contiguous doublewords
		m.Write64(addr, uint64(i))
	}
}

// instruction fetch interleaved with data accesses on another page, as the
// two-entry page cache expects
func benchInstructionFetch(b *testing.B, m *Memory) {
	const code, data = 0x8200_0000, 0x4000_0000
	for i := uint64(0); i < PageSize; i += 4 {
		m.Write32(code+i, 0x60000000)
	}
	m.Write64(data, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Read32(code + uint64(i*4)%PageSize)
		m.Write64(data+uint64(i*8)%PageSize, uint64(i))
	}
}

func benchPageCrossingWords(b *testing.B, m *Memory) {
	for i := 0; i < b.N; i++ {
		addr := uint64(i%64)*PageSize + PageSize - 2
		m.Write32(addr, uint32(i))
		_ = m.Read32(addr)
	}
}
