package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/brdrrt/rv-emu/emu"
)

var _ = Describe("Memory", func() {
	Describe("NewMemory", func() {
		It("should zero-pad a short image to the full capacity", func() {
			mem := emu.NewMemory([]byte{0x01, 0x02, 0x03})

			Expect(mem.Size()).To(Equal(emu.MemorySize))
			Expect(mem.Bytes()[0]).To(Equal(byte(0x01)))
			Expect(mem.Bytes()[2]).To(Equal(byte(0x03)))
			Expect(mem.Bytes()[3]).To(Equal(byte(0x00)))
		})

		It("should truncate an oversized image", func() {
			image := make([]byte, emu.MemorySize+100)
			for i := range image {
				image[i] = 0xaa
			}

			mem := emu.NewMemory(image)

			Expect(mem.Size()).To(Equal(emu.MemorySize))
		})
	})

	Describe("tooling access", func() {
		It("should peek and poke bytes by address", func() {
			mem := emu.NewMemory(nil)

			Expect(mem.PokeByte(emu.RAMBase+5, 0x42)).To(Succeed())

			b, err := mem.PeekByte(emu.RAMBase + 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(b).To(Equal(byte(0x42)))
			Expect(mem.Bytes()[5]).To(Equal(byte(0x42)))
		})

		It("should refuse to poke below the RAM base", func() {
			mem := emu.NewMemory(nil)

			err := mem.PokeByte(emu.RAMBase-1, 0x42)

			Expect(err).To(MatchError(emu.UnmappedAddressError{}))
		})
	})
})

var _ = Describe("Bus", func() {
	var (
		mem *emu.Memory
		bus *emu.Bus
	)

	BeforeEach(func() {
		mem = emu.NewMemory(nil)
		bus = emu.NewBus(mem)
	})

	Describe("round trips", func() {
		It("should round-trip an 8-bit value", func() {
			Expect(bus.Store(emu.RAMBase+10, emu.Access8, 0xfe)).To(Succeed())

			value, err := bus.Load(emu.RAMBase+10, emu.Access8)
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(uint64(0xfe)))
		})

		It("should round-trip a 16-bit value", func() {
			Expect(bus.Store(emu.RAMBase+10, emu.Access16, 0xbeef)).To(Succeed())

			value, err := bus.Load(emu.RAMBase+10, emu.Access16)
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(uint64(0xbeef)))
		})

		It("should round-trip a 32-bit value", func() {
			Expect(bus.Store(emu.RAMBase, emu.Access32, 0xdeadbeef)).To(Succeed())

			value, err := bus.Load(emu.RAMBase, emu.Access32)
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(uint64(0xdeadbeef)))
		})

		It("should round-trip a 64-bit value", func() {
			Expect(bus.Store(emu.RAMBase+16, emu.Access64, 0x0123456789abcdef)).To(Succeed())

			value, err := bus.Load(emu.RAMBase+16, emu.Access64)
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(uint64(0x0123456789abcdef)))
		})

		It("should round-trip at misaligned addresses", func() {
			Expect(bus.Store(emu.RAMBase+3, emu.Access32, 0x12345678)).To(Succeed())

			value, err := bus.Load(emu.RAMBase+3, emu.Access32)
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(uint64(0x12345678)))
		})
	})

	Describe("byte order", func() {
		It("should store multi-byte values little-endian", func() {
			Expect(bus.Store(emu.RAMBase, emu.Access32, 0x12345678)).To(Succeed())

			Expect(mem.Bytes()[0:4]).To(Equal([]byte{0x78, 0x56, 0x34, 0x12}))
		})

		It("should assemble loads little-endian", func() {
			copy(mem.Bytes(), []byte{0x78, 0x56, 0x34, 0x12})

			value, err := bus.Load(emu.RAMBase, emu.Access32)
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(uint64(0x12345678)))
		})

		It("should store only the low bits of a wide value", func() {
			Expect(bus.Store(emu.RAMBase, emu.Access8, 0x12345678)).To(Succeed())

			Expect(mem.Bytes()[0]).To(Equal(byte(0x78)))
			Expect(mem.Bytes()[1]).To(Equal(byte(0x00)))
		})
	})

	Describe("faults", func() {
		It("should fault on loads below the RAM base", func() {
			_, err := bus.Load(0x10, emu.Access32)

			Expect(err).To(MatchError(emu.UnmappedAddressError{}))
		})

		It("should fault on stores below the RAM base", func() {
			err := bus.Store(0x00, emu.Access8, 0xff)

			Expect(err).To(MatchError(emu.UnmappedAddressError{}))
		})

		It("should fault when the byte range exceeds capacity", func() {
			lastValid := uint32(emu.RAMBase + emu.MemorySize - 4)

			Expect(bus.Store(lastValid, emu.Access32, 0x1)).To(Succeed())

			err := bus.Store(lastValid+1, emu.Access32, 0x1)
			Expect(err).To(MatchError(emu.OutOfBoundsError{}))

			_, err = bus.Load(lastValid+2, emu.Access32)
			Expect(err).To(MatchError(emu.OutOfBoundsError{}))
		})

		It("should allow an 8-bit access to the last byte", func() {
			last := uint32(emu.RAMBase + emu.MemorySize - 1)

			Expect(bus.Store(last, emu.Access8, 0x7f)).To(Succeed())

			value, err := bus.Load(last, emu.Access8)
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(uint64(0x7f)))
		})

		It("should reject access widths outside the supported set", func() {
			_, err := bus.Load(emu.RAMBase, emu.AccessSize(12))
			Expect(err).To(MatchError(emu.ErrUnsupportedAccessSize))

			err = bus.Store(emu.RAMBase, emu.AccessSize(0), 1)
			Expect(err).To(MatchError(emu.ErrUnsupportedAccessSize))
		})
	})
})
