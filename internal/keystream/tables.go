package keystream

// Version 3 key tables, one per region, 64 entries each, indexed by
// name-sum modulo 64.
//
// Reference: original_source/honokamiku_key_tables.h (jp/en/tw/cn_v3_keytables).
var jpV3KeyTable = [64]uint32{
	1210253353, 1736710334, 1030507233, 1924017366,
	1603299666, 1844516425, 1102797553, 32188137,
	782633907, 356258523, 957120135, 10030910,
	811467044, 1226589197, 1303858438, 1423840583,
	756169139, 1304954701, 1723556931, 648430219,
	1560506399, 1987934810, 305677577, 505363237,
	450129501, 1811702731, 2146795414, 842747461,
	638394899, 51014537, 198914076, 120739502,
	1973027104, 586031952, 1484278592, 1560111926,
	441007634, 1006001970, 2038250142, 232546121,
	827280557, 1307729428, 775964996, 483398502,
	1724135019, 2125939248, 742088754, 1411519905,
	136462070, 1084053905, 2039157473, 1943671327,
	650795184, 151139993, 1467120569, 1883837341,
	1249929516, 382015614, 1020618905, 1082135529,
	870997426, 1221338057, 1623152467, 1020681319,
}

var enV3KeyTable = [64]uint32{
	2861607190, 3623207331, 3775582911, 3285432773,
	2211141973, 3078448744, 464780620, 714479011,
	439907422, 421011207, 2997499268, 630739911,
	1488792645, 1334839443, 3136567329, 796841981,
	2604917769, 4035806207, 693592067, 1142167757,
	1158290436, 568289681, 3621754479, 3645263650,
	4125133444, 3226430103, 3090611485, 1144327221,
	879762852, 2932733487, 1916506591, 2754493440,
	1489123288, 3555253860, 2353824933, 1682542640,
	635743937, 3455367432, 532501229, 4106615561,
	2081902950, 143042908, 2637612210, 1140910436,
	3402665631, 334620177, 1874530657, 863688911,
	1651916050, 1216533340, 2730854202, 1488870464,
	2778406960, 3973978011, 1602100650, 2877224961,
	1406289939, 1442089725, 2196364928, 2599396125,
	2963448367, 3316646782, 322755307, 3531653795,
}

var twV3KeyTable = [64]uint32{
	0xA925E518, 0x5AB9C4A4, 0x01950558, 0xACFF7182,
	0xE8183331, 0x9D1B6963, 0x0B8E9D15, 0x96DAD0BB,
	0x0F941E35, 0xC968E363, 0x2058A6AA, 0x7176BB02,
	0x4A4B2403, 0xED7A4E23, 0x3BB41EE6, 0x71634C06,
	0x7E0DD1DA, 0x343325C9, 0xE97B42F6, 0xF68F3C8F,
	0x1587DED8, 0x09935F9B, 0x3273309B, 0xEFBC3178,
	0x94C01BDD, 0x40CEA3BB, 0xD5785C8A, 0x0EC1B98E,
	0xC8D2D2B6, 0xEF7D77B1, 0x71814AAF, 0x2E838EAB,
	0x6B187F58, 0xA9BC924E, 0x6EAB5BA6, 0x738F6D2F,
	0xC1B49AA4, 0xAB6A5D53, 0xF958F728, 0x5A0CDB5B,
	0xB8133931, 0x923336C3, 0xB5A41DE0, 0x5F819B33,
	0x1F3A76AF, 0x56FB7A7C, 0x64AE7167, 0xF39C00F2,
	0x8F6F61C4, 0x6A79B9B9, 0x5B0AB1A6, 0xB7F07A0A,
	0x223035FF, 0x1AA8664C, 0x553EDB16, 0x379230C6,
	0xA2AEEB8A, 0xF647D0EA, 0xA91CB2F6, 0xBB70F817,
	0x94D63581, 0x49A7FAD6, 0x7BEDDD15, 0xC6913CED,
}

var cnV3KeyTable = [64]uint32{
	0x1b695658, 0x0a43a213, 0x0ead0863, 0x1400056d,
	0xd470461d, 0xb6152300, 0xfbe054bc, 0x9ac9f112,
	0x23d3cab6, 0xcd8fe028, 0x6905bd74, 0x01a3a612,
	0x6e96a579, 0x333d7ad1, 0xb6688bff, 0x29160495,
	0xd7743bcf, 0x8ede97bb, 0xcacb7e8d, 0x24d81c23,
	0xdbfc6947, 0xb07521c8, 0xf506e2ae, 0x3f48df2f,
	0x52beb172, 0x695935e8, 0x13e2a0a9, 0xe2edf409,
	0x96cba5c1, 0xdbb1e890, 0x4c2af968, 0x17fd17c6,
	0x1b9af5a8, 0x97c0bc25, 0x8413c879, 0xd9b13fe1,
	0x4066a948, 0x9662023a, 0x74a4feee, 0x1f24b4f6,
	0x637688c8, 0x7a7ccf70, 0x91042eec, 0x57edd02c,
	0x666da2dd, 0x92839de9, 0x43baa9ed, 0x024a8e2c,
	0xd4ee7b72, 0x34c18b72, 0x13b275c4, 0xed506a6e,
	0xbc1c29b9, 0xfa66a220, 0xc2364de3, 0x767e52b2,
	0xe2d32439, 0xe6f0cef5, 0xd18c8687, 0x14bba295,
	0xcd84d15b, 0xa0290f82, 0xd3e95afc, 0x9c6a97b4,
}

// lcgParams is one of the four shared LCG parameter triples used by V3+.
//
// Reference: original_source/honokamiku_key_tables.h (lcg_keys, lcg_key_tables).
type lcgParams struct {
	mul   uint32
	add   uint32
	shift uint32
}

var lcgTable = [4]lcgParams{
	{mul: 1103515245, add: 12345, shift: 15},
	{mul: 22695477, add: 1, shift: 23},
	{mul: 214013, add: 2531011, shift: 24},
	{mul: 65793, add: 4282663, shift: 8},
}

// v3LCG is the fixed LCG used by V3's single-table keying (not looked up
// from lcgTable by index; spec.md §4.4 point 4 gives it as a literal).
var v3LCG = lcgParams{mul: 214013, add: 2531011, shift: 24}
