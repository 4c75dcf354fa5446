package decoder

// op declares an entry without a record form.
func op(v uint32, name string) Pattern[string] {
	return P(v, name, name)
}

// rc declares an entry whose record form appends a period.
func rc(v uint32, name string) Pattern[string] {
	return P(v, name, name+".")
}

// lk declares a branch whose link form appends an l.
func lk(v uint32, name string) Pattern[string] {
	return P(v, name, name+"l")
}

var groups = []Group{
	{
		Name:   "primary",
		Layout: Layout{Count: PrimaryBits, Sh: ExtBits},
		Patterns: []Pattern[string]{
			op(0x02, "tdi"),
			op(0x03, "twi"),
			op(0x07, "mulli"),
			op(0x08, "subfic"),
			op(0x0A, "cmpli"),
			op(0x0B, "cmpi"),
			op(0x0C, "addic"),
			op(0x0D, "addic."),
			op(0x0E, "addi"),
			op(0x0F, "addis"),
			lk(0x10, "bc"),
			op(0x11, "sc"),
			lk(0x12, "b"),
			rc(0x14, "rlwimi"),
			rc(0x15, "rlwinm"),
			rc(0x17, "rlwnm"),
			op(0x18, "ori"),
			op(0x19, "oris"),
			op(0x1A, "xori"),
			op(0x1B, "xoris"),
			op(0x1C, "andi."),
			op(0x1D, "andis."),
			op(0x20, "lwz"),
			op(0x21, "lwzu"),
			op(0x22, "lbz"),
			op(0x23, "lbzu"),
			op(0x24, "stw"),
			op(0x25, "stwu"),
			op(0x26, "stb"),
			op(0x27, "stbu"),
			op(0x28, "lhz"),
			op(0x29, "lhzu"),
			op(0x2A, "lha"),
			op(0x2B, "lhau"),
			op(0x2C, "sth"),
			op(0x2D, "sthu"),
			op(0x2E, "lmw"),
			op(0x2F, "stmw"),
			op(0x30, "lfs"),
			op(0x31, "lfsu"),
			op(0x32, "lfd"),
			op(0x33, "lfdu"),
			op(0x34, "stfs"),
			op(0x35, "stfsu"),
			op(0x36, "stfd"),
			op(0x37, "stfdu"),
		},
	},
	{
		// VX, VA and VC forms in bits 21..31, VMX128 memory forms
		Name:   "vmx",
		Layout: Layout{Primary: 0x04, Count: 11, Sh: 0},
		Patterns: []Pattern[string]{
			op(0x000, "vaddubm"),
			op(0x002, "vmaxub"),
			op(0x004, "vrlb"),
			op(0x008, "vmuloub"),
			op(0x00A, "vaddfp"),
			op(0x00C, "vmrghb"),
			op(0x00E, "vpkuhum"),
			op(0x040, "vadduhm"),
			op(0x042, "vmaxuh"),
			op(0x044, "vrlh"),
			op(0x048, "vmulouh"),
			op(0x04A, "vsubfp"),
			op(0x04C, "vmrghh"),
			op(0x04E, "vpkuwum"),
			op(0x080, "vadduwm"),
			op(0x082, "vmaxuw"),
			op(0x084, "vrlw"),
			op(0x08C, "vmrghw"),
			op(0x08E, "vpkuhus"),
			op(0x0CE, "vpkuwus"),
			op(0x102, "vmaxsb"),
			op(0x104, "vslb"),
			op(0x108, "vmulosb"),
			op(0x10A, "vrefp"),
			op(0x10C, "vmrglb"),
			op(0x10E, "vpkshus"),
			op(0x142, "vmaxsh"),
			op(0x144, "vslh"),
			op(0x148, "vmulosh"),
			op(0x14A, "vrsqrtefp"),
			op(0x14C, "vmrglh"),
			op(0x14E, "vpkswus"),
			op(0x180, "vaddcuw"),
			op(0x182, "vmaxsw"),
			op(0x184, "vslw"),
			op(0x18A, "vexptefp"),
			op(0x18C, "vmrglw"),
			op(0x18E, "vpkshss"),
			op(0x1C4, "vsl"),
			op(0x1CA, "vlogefp"),
			op(0x1CE, "vpkswss"),
			op(0x200, "vaddubs"),
			op(0x202, "vminub"),
			op(0x204, "vsrb"),
			op(0x208, "vmuleub"),
			op(0x20A, "vrfin"),
			op(0x20C, "vspltb"),
			op(0x20E, "vupkhsb"),
			op(0x240, "vadduhs"),
			op(0x242, "vminuh"),
			op(0x244, "vsrh"),
			op(0x248, "vmuleuh"),
			op(0x24A, "vrfiz"),
			op(0x24C, "vsplth"),
			op(0x24E, "vupkhsh"),
			op(0x280, "vadduws"),
			op(0x282, "vminuw"),
			op(0x284, "vsrw"),
			op(0x28A, "vrfip"),
			op(0x28C, "vspltw"),
			op(0x28E, "vupklsb"),
			op(0x2C4, "vsr"),
			op(0x2CA, "vrfim"),
			op(0x2CE, "vupklsh"),
			op(0x300, "vaddsbs"),
			op(0x302, "vminsb"),
			op(0x304, "vsrab"),
			op(0x308, "vmulesb"),
			op(0x30A, "vcfux"),
			op(0x30C, "vspltisb"),
			op(0x30E, "vpkpx"),
			op(0x340, "vaddshs"),
			op(0x342, "vminsh"),
			op(0x344, "vsrah"),
			op(0x348, "vmulesh"),
			op(0x34A, "vcfsx"),
			op(0x34C, "vspltish"),
			op(0x34E, "vupkhpx"),
			op(0x380, "vaddsws"),
			op(0x382, "vminsw"),
			op(0x384, "vsraw"),
			op(0x38A, "vctuxs"),
			op(0x38C, "vspltisw"),
			op(0x3CA, "vctsxs"),
			op(0x3CE, "vupklpx"),
			op(0x400, "vsububm"),
			op(0x402, "vavgub"),
			op(0x404, "vand"),
			op(0x40A, "vmaxfp"),
			op(0x40C, "vslo"),
			op(0x440, "vsubuhm"),
			op(0x442, "vavguh"),
			op(0x444, "vandc"),
			op(0x44A, "vminfp"),
			op(0x44C, "vsro"),
			op(0x480, "vsubuwm"),
			op(0x482, "vavguw"),
			op(0x484, "vor"),
			op(0x4C4, "vxor"),
			op(0x502, "vavgsb"),
			op(0x504, "vnor"),
			op(0x542, "vavgsh"),
			op(0x580, "vsubcuw"),
			op(0x582, "vavgsw"),
			op(0x600, "vsububs"),
			op(0x604, "mfvscr"),
			op(0x608, "vsum4ubs"),
			op(0x640, "vsubuhs"),
			op(0x644, "mtvscr"),
			op(0x648, "vsum4shs"),
			op(0x680, "vsubuws"),
			op(0x688, "vsum2sws"),
			op(0x700, "vsubsbs"),
			op(0x708, "vsum4sbs"),
			op(0x740, "vsubshs"),
			op(0x780, "vsubsws"),
			op(0x788, "vsumsws"),

			// VC form, Rc in bit 21
			op(0x006, "vcmpequb"),
			op(0x406, "vcmpequb."),
			op(0x046, "vcmpequh"),
			op(0x446, "vcmpequh."),
			op(0x086, "vcmpequw"),
			op(0x486, "vcmpequw."),
			op(0x0C6, "vcmpeqfp"),
			op(0x4C6, "vcmpeqfp."),
			op(0x1C6, "vcmpgefp"),
			op(0x5C6, "vcmpgefp."),
			op(0x206, "vcmpgtub"),
			op(0x606, "vcmpgtub."),
			op(0x246, "vcmpgtuh"),
			op(0x646, "vcmpgtuh."),
			op(0x286, "vcmpgtuw"),
			op(0x686, "vcmpgtuw."),
			op(0x2C6, "vcmpgtfp"),
			op(0x6C6, "vcmpgtfp."),
			op(0x306, "vcmpgtsb"),
			op(0x706, "vcmpgtsb."),
			op(0x346, "vcmpgtsh"),
			op(0x746, "vcmpgtsh."),
			op(0x386, "vcmpgtsw"),
			op(0x786, "vcmpgtsw."),
			op(0x3C6, "vcmpbfp"),
			op(0x7C6, "vcmpbfp."),

			// VA form, 6-bit opcode in bits 26..31, VC in bits 21..25
			op(0x20, "vmhaddshs").Columns(5),
			op(0x21, "vmhraddshs").Columns(5),
			op(0x22, "vmladduhm").Columns(5),
			op(0x24, "vmsumubm").Columns(5),
			op(0x25, "vmsummbm").Columns(5),
			op(0x26, "vmsumuhm").Columns(5),
			op(0x27, "vmsumuhs").Columns(5),
			op(0x28, "vmsumshm").Columns(5),
			op(0x29, "vmsumshs").Columns(5),
			op(0x2A, "vsel").Columns(5),
			op(0x2B, "vperm").Columns(5),
			op(0x2C, "vsldoi").Columns(5),
			op(0x2E, "vmaddfp").Columns(5),
			op(0x2F, "vnmsubfp").Columns(5),

			// VX128_1: VD128h in bits 28..29
			op(0x003, "lvsl128").Ignore(0x00C),
			op(0x043, "lvsr128").Ignore(0x00C),
			op(0x083, "lvewx128").Ignore(0x00C),
			op(0x0C3, "lvx128").Ignore(0x00C),
			op(0x183, "stvewx128").Ignore(0x00C),
			op(0x1C3, "stvx128").Ignore(0x00C),
			op(0x2C3, "lvxl128").Ignore(0x00C),
			op(0x3C3, "stvxl128").Ignore(0x00C),
			op(0x403, "lvlx128").Ignore(0x00C),
			op(0x443, "lvrx128").Ignore(0x00C),
			op(0x503, "stvlx128").Ignore(0x00C),
			op(0x543, "stvrx128").Ignore(0x00C),
			op(0x603, "lvlxl128").Ignore(0x00C),
			op(0x643, "lvrxl128").Ignore(0x00C),
			op(0x703, "stvlxl128").Ignore(0x00C),
			op(0x743, "stvrxl128").Ignore(0x00C),

			// VX128_5: shift count and register bits everywhere but bit 27
			op(0x010, "vsldoi128").Ignore(0x7EF),
		},
	},
	{
		Name:   "vmx128a",
		Layout: Layout{Primary: 0x05, Count: 11, Sh: 0},
		Patterns: []Pattern[string]{
			op(0x000, "vperm128").Ignore(0x5EF),

			op(0x010, "vaddfp128").Ignore(0x42F),
			op(0x050, "vsubfp128").Ignore(0x42F),
			op(0x090, "vmulfp128").Ignore(0x42F),
			op(0x0D0, "vmaddfp128").Ignore(0x42F),
			op(0x110, "vmaddcfp128").Ignore(0x42F),
			op(0x150, "vnmsubfp128").Ignore(0x42F),
			op(0x190, "vmsum3fp128").Ignore(0x42F),
			op(0x1D0, "vmsum4fp128").Ignore(0x42F),
			op(0x200, "vpkshss128").Ignore(0x42F),
			op(0x210, "vand128").Ignore(0x42F),
			op(0x240, "vpkshus128").Ignore(0x42F),
			op(0x250, "vandc128").Ignore(0x42F),
			op(0x280, "vpkswss128").Ignore(0x42F),
			op(0x290, "vnor128").Ignore(0x42F),
			op(0x2C0, "vpkswus128").Ignore(0x42F),
			op(0x2D0, "vor128").Ignore(0x42F),
			op(0x300, "vpkuhum128").Ignore(0x42F),
			op(0x310, "vxor128").Ignore(0x42F),
			op(0x340, "vpkuhus128").Ignore(0x42F),
			op(0x350, "vsel128").Ignore(0x42F),
			op(0x380, "vpkuwum128").Ignore(0x42F),
			op(0x390, "vslo128").Ignore(0x42F),
			op(0x3C0, "vpkuwus128").Ignore(0x42F),
			op(0x3D0, "vsro128").Ignore(0x42F),
		},
	},
	{
		Name:   "vmx128b",
		Layout: Layout{Primary: 0x06, Count: 11, Sh: 0},
		Patterns: []Pattern[string]{
			// VX128_R: Rc in bit 25
			op(0x000, "vcmpeqfp128").Ignore(0x42F),
			op(0x040, "vcmpeqfp128.").Ignore(0x42F),
			op(0x080, "vcmpgefp128").Ignore(0x42F),
			op(0x0C0, "vcmpgefp128.").Ignore(0x42F),
			op(0x100, "vcmpgtfp128").Ignore(0x42F),
			op(0x140, "vcmpgtfp128.").Ignore(0x42F),
			op(0x180, "vcmpbfp128").Ignore(0x42F),
			op(0x1C0, "vcmpbfp128.").Ignore(0x42F),
			op(0x200, "vcmpequw128").Ignore(0x42F),
			op(0x240, "vcmpequw128.").Ignore(0x42F),

			op(0x050, "vrlw128").Ignore(0x42F),
			op(0x0D0, "vslw128").Ignore(0x42F),
			op(0x150, "vsraw128").Ignore(0x42F),
			op(0x1D0, "vsrw128").Ignore(0x42F),
			op(0x280, "vmaxfp128").Ignore(0x42F),
			op(0x2C0, "vminfp128").Ignore(0x42F),
			op(0x300, "vmrghw128").Ignore(0x42F),
			op(0x340, "vmrglw128").Ignore(0x42F),

			// VX128_3: immediate or VB128 only
			op(0x230, "vcfpsxws128").Ignore(0x00F),
			op(0x270, "vcfpuxws128").Ignore(0x00F),
			op(0x2B0, "vcsxwfp128").Ignore(0x00F),
			op(0x2F0, "vcuxwfp128").Ignore(0x00F),
			op(0x330, "vrfim128").Ignore(0x00F),
			op(0x370, "vrfin128").Ignore(0x00F),
			op(0x3B0, "vrfip128").Ignore(0x00F),
			op(0x3F0, "vrfiz128").Ignore(0x00F),
			op(0x380, "vupkhsb128").Ignore(0x00F),
			op(0x3C0, "vupklsb128").Ignore(0x00F),
			op(0x630, "vrefp128").Ignore(0x00F),
			op(0x670, "vrsqrtefp128").Ignore(0x00F),
			op(0x6B0, "vexptefp128").Ignore(0x00F),
			op(0x6F0, "vlogefp128").Ignore(0x00F),
			op(0x730, "vspltw128").Ignore(0x00F),
			op(0x770, "vspltisw128").Ignore(0x00F),
			op(0x7A0, "vupkhsh128").Ignore(0x00F),
			op(0x7E0, "vupklsh128").Ignore(0x00F),
			op(0x7F0, "vupkd3d128").Ignore(0x00F),

			// VX128_P and VX128_4: permute control and immediates
			op(0x210, "vpermwi128").Ignore(0x1CF),
			op(0x610, "vpkd3d128").Ignore(0x0CF),
			op(0x710, "vrlimi128").Ignore(0x0CF),
		},
	},
	{
		Name:   "cr",
		Layout: Layout{Primary: 0x13, Count: 10, Sh: 1},
		Patterns: []Pattern[string]{
			op(0x000, "mcrf"),
			lk(0x010, "bclr"),
			op(0x012, "rfid"),
			op(0x021, "crnor"),
			op(0x081, "crandc"),
			op(0x096, "isync"),
			op(0x0C1, "crxor"),
			op(0x0E1, "crnand"),
			op(0x101, "crand"),
			op(0x121, "creqv"),
			op(0x1A1, "crorc"),
			op(0x1C1, "cror"),
			lk(0x210, "bcctr"),
		},
	},
	{
		// MD form: 3-bit opcode plus sh5 in bits 27..30, MDS form: 4-bit
		Name:   "rld",
		Layout: Layout{Primary: 0x1E, Count: 4, Sh: 1},
		Patterns: []Pattern[string]{
			rc(0x0, "rldicl"),
			rc(0x1, "rldicl"),
			rc(0x2, "rldicr"),
			rc(0x3, "rldicr"),
			rc(0x4, "rldic"),
			rc(0x5, "rldic"),
			rc(0x6, "rldimi"),
			rc(0x7, "rldimi"),
			rc(0x8, "rldcl"),
			rc(0x9, "rldcr"),
		},
	},
	{
		Name:   "x",
		Layout: Layout{Primary: 0x1F, Count: 10, Sh: 1},
		Patterns: []Pattern[string]{
			op(0x000, "cmp"),
			op(0x004, "tw"),
			op(0x006, "lvsl"),
			op(0x007, "lvebx"),
			rc(0x008, "subfc"),
			rc(0x208, "subfco"),
			rc(0x009, "mulhdu"),
			rc(0x00A, "addc"),
			rc(0x20A, "addco"),
			rc(0x00B, "mulhwu"),
			op(0x013, "mfocrf"),
			op(0x014, "lwarx"),
			op(0x015, "ldx"),
			op(0x017, "lwzx"),
			rc(0x018, "slw"),
			rc(0x01A, "cntlzw"),
			rc(0x01B, "sld"),
			rc(0x01C, "and"),
			op(0x020, "cmpl"),
			op(0x026, "lvsr"),
			op(0x027, "lvehx"),
			rc(0x028, "subf"),
			rc(0x228, "subfo"),
			op(0x035, "ldux"),
			op(0x036, "dcbst"),
			op(0x037, "lwzux"),
			rc(0x03A, "cntlzd"),
			rc(0x03C, "andc"),
			op(0x044, "td"),
			op(0x047, "lvewx"),
			rc(0x049, "mulhd"),
			rc(0x04B, "mulhw"),
			op(0x053, "mfmsr"),
			op(0x054, "ldarx"),
			op(0x056, "dcbf"),
			op(0x057, "lbzx"),
			op(0x067, "lvx"),
			rc(0x068, "neg"),
			rc(0x268, "nego"),
			op(0x077, "lbzux"),
			rc(0x07C, "nor"),
			op(0x087, "stvebx"),
			rc(0x088, "subfe"),
			rc(0x288, "subfeo"),
			rc(0x08A, "adde"),
			rc(0x28A, "addeo"),
			op(0x090, "mtocrf"),
			op(0x092, "mtmsr"),
			op(0x095, "stdx"),
			op(0x096, "stwcx."),
			op(0x097, "stwx"),
			op(0x0A7, "stvehx"),
			op(0x0B2, "mtmsrd"),
			op(0x0B5, "stdux"),
			op(0x0B7, "stwux"),
			op(0x0C7, "stvewx"),
			rc(0x0C8, "subfze"),
			rc(0x2C8, "subfzeo"),
			rc(0x0CA, "addze"),
			rc(0x2CA, "addzeo"),
			op(0x0D6, "stdcx."),
			op(0x0D7, "stbx"),
			op(0x0E7, "stvx"),
			rc(0x0E8, "subfme"),
			rc(0x2E8, "subfmeo"),
			rc(0x0E9, "mulld"),
			rc(0x2E9, "mulldo"),
			rc(0x0EA, "addme"),
			rc(0x2EA, "addmeo"),
			rc(0x0EB, "mullw"),
			rc(0x2EB, "mullwo"),
			op(0x0F6, "dcbtst"),
			op(0x0F7, "stbux"),
			rc(0x10A, "add"),
			rc(0x30A, "addo"),
			op(0x112, "tlbiel"),
			op(0x116, "dcbt"),
			op(0x117, "lhzx"),
			rc(0x11C, "eqv"),
			op(0x132, "tlbie"),
			op(0x136, "eciwx"),
			op(0x137, "lhzux"),
			rc(0x13C, "xor"),
			op(0x153, "mfspr"),
			op(0x155, "lwax"),
			op(0x156, "dst"),
			op(0x157, "lhax"),
			op(0x167, "lvxl"),
			op(0x173, "mftb"),
			op(0x175, "lwaux"),
			op(0x176, "dstst"),
			op(0x177, "lhaux"),
			op(0x192, "slbmte"),
			op(0x197, "sthx"),
			rc(0x19C, "orc"),
			op(0x1B2, "slbie"),
			op(0x1B6, "ecowx"),
			op(0x1B7, "sthux"),
			rc(0x1BC, "or"),
			rc(0x1C9, "divdu"),
			rc(0x3C9, "divduo"),
			rc(0x1CB, "divwu"),
			rc(0x3CB, "divwuo"),
			op(0x1D3, "mtspr"),
			op(0x1D6, "dcbi"),
			rc(0x1DC, "nand"),
			op(0x1E7, "stvxl"),
			rc(0x1E9, "divd"),
			rc(0x3E9, "divdo"),
			rc(0x1EB, "divw"),
			rc(0x3EB, "divwo"),
			op(0x1F2, "slbia"),
			op(0x207, "lvlx"),
			op(0x214, "ldbrx"),
			op(0x215, "lswx"),
			op(0x216, "lwbrx"),
			op(0x217, "lfsx"),
			rc(0x218, "srw"),
			rc(0x21B, "srd"),
			op(0x227, "lvrx"),
			op(0x236, "tlbsync"),
			op(0x237, "lfsux"),
			op(0x253, "mfsr"),
			op(0x255, "lswi"),
			op(0x256, "sync"),
			op(0x257, "lfdx"),
			op(0x277, "lfdux"),
			op(0x287, "stvlx"),
			op(0x293, "mfsrin"),
			op(0x294, "stdbrx"),
			op(0x295, "stswx"),
			op(0x296, "stwbrx"),
			op(0x297, "stfsx"),
			op(0x2A7, "stvrx"),
			op(0x2B7, "stfsux"),
			op(0x2D5, "stswi"),
			op(0x2D7, "stfdx"),
			op(0x2F7, "stfdux"),
			op(0x307, "lvlxl"),
			op(0x316, "lhbrx"),
			rc(0x318, "sraw"),
			rc(0x31A, "srad"),
			op(0x327, "lvrxl"),
			op(0x336, "dss"),
			rc(0x338, "srawi"),
			rc(0x33A, "sradi"),
			rc(0x33B, "sradi"),
			op(0x353, "slbmfev"),
			op(0x356, "eieio"),
			op(0x387, "stvlxl"),
			op(0x393, "slbmfee"),
			op(0x396, "sthbrx"),
			rc(0x39A, "extsh"),
			op(0x3A7, "stvrxl"),
			rc(0x3BA, "extsb"),
			op(0x3D6, "icbi"),
			op(0x3D7, "stfiwx"),
			rc(0x3DA, "extsw"),
			op(0x3F6, "dcbz"),
		},
	},
	{
		Name:   "ds-load",
		Layout: Layout{Primary: 0x3A, Count: 2, Sh: 0},
		Patterns: []Pattern[string]{
			op(0x0, "ld"),
			op(0x1, "ldu"),
			op(0x2, "lwa"),
		},
	},
	{
		Name:   "fp-single",
		Layout: Layout{Primary: 0x3B, Count: 10, Sh: 1},
		Patterns: []Pattern[string]{
			rc(0x12, "fdivs").Columns(5),
			rc(0x14, "fsubs").Columns(5),
			rc(0x15, "fadds").Columns(5),
			rc(0x16, "fsqrts").Columns(5),
			rc(0x18, "fres").Columns(5),
			rc(0x19, "fmuls").Columns(5),
			rc(0x1C, "fmsubs").Columns(5),
			rc(0x1D, "fmadds").Columns(5),
			rc(0x1E, "fnmsubs").Columns(5),
			rc(0x1F, "fnmadds").Columns(5),
		},
	},
	{
		Name:   "ds-store",
		Layout: Layout{Primary: 0x3E, Count: 2, Sh: 0},
		Patterns: []Pattern[string]{
			op(0x0, "std"),
			op(0x1, "stdu"),
		},
	},
	{
		Name:   "fp-double",
		Layout: Layout{Primary: 0x3F, Count: 10, Sh: 1},
		Patterns: []Pattern[string]{
			op(0x000, "fcmpu"),
			rc(0x00C, "frsp"),
			rc(0x00E, "fctiw"),
			rc(0x00F, "fctiwz"),
			op(0x020, "fcmpo"),
			rc(0x026, "mtfsb1"),
			rc(0x028, "fneg"),
			op(0x040, "mcrfs"),
			rc(0x046, "mtfsb0"),
			rc(0x048, "fmr"),
			rc(0x086, "mtfsfi"),
			rc(0x088, "fnabs"),
			rc(0x108, "fabs"),
			rc(0x247, "mffs"),
			rc(0x2C7, "mtfsf"),
			rc(0x32E, "fctid"),
			rc(0x32F, "fctidz"),
			rc(0x34E, "fcfid"),

			// A form, 5-bit opcode in bits 26..30, FRC in bits 21..25
			rc(0x12, "fdiv").Columns(5),
			rc(0x14, "fsub").Columns(5),
			rc(0x15, "fadd").Columns(5),
			rc(0x16, "fsqrt").Columns(5),
			rc(0x17, "fsel").Columns(5),
			rc(0x19, "fmul").Columns(5),
			rc(0x1A, "frsqrte").Columns(5),
			rc(0x1C, "fmsub").Columns(5),
			rc(0x1D, "fmadd").Columns(5),
			rc(0x1E, "fnmsub").Columns(5),
			rc(0x1F, "fnmadd").Columns(5),
		},
	},
}

// Groups returns a copy of the opcode specification, in expansion order.
func Groups() []Group {
	return cloneGroups(groups)
}

func cloneGroups(gs []Group) []Group {
	out := make([]Group, len(gs))
	for i, g := range gs {
		g.Patterns = append([]Pattern[string](nil), g.Patterns...)
		out[i] = g
	}
	return out
}
