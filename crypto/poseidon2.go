package crypto

// Poseidon2 permutation over a width-12 Goldilocks state, and the sponge
// hash used for every challenge and transaction digest in the signer.
//
// The round schedule, constants, S-box exponent and internal diagonal
// matrix must match the exchange verifier bit-exactly; do not touch them.

const (
	poseidonWidth      = 12
	poseidonRate       = 8
	poseidonRoundsFull = 4 // per half
	poseidonRoundsPart = 22
)

// External (full) round constants, one row per full round.
var poseidonExternalConstants = [2 * poseidonRoundsFull][poseidonWidth]Goldilocks{
	{
		15492826721047263190, 11728330187201910315, 8836021247773420868, 16777404051263952451,
		5510875212538051896, 6173089941271892285, 2927757366422211339, 10340958981325008808,
		8541987352684552425, 9739599543776434497, 15073950188101532019, 12084856431752384512,
	},
	{
		4584713381960671270, 8807052963476652830, 54136601502601741, 4872702333905478703,
		5551030319979516287, 12889366755535460989, 16329242193178844328, 412018088475211848,
		10505784623379650541, 9758812378619434837, 7421979329386275117, 375240370024755551,
	},
	{
		3331431125640721931, 15684937309956309981, 578521833432107983, 14379242000670861838,
		17922409828154900976, 8153494278429192257, 15904673920630731971, 11217863998460634216,
		3301540195510742136, 9937973023749922003, 3059102938155026419, 1895288289490976132,
	},
	{
		5580912693628927540, 10064804080494788323, 9582481583369602410, 10186259561546797986,
		247426333829703916, 13193193905461376067, 6386232593701758044, 17954717245501896472,
		1531720443376282699, 2455761864255501970, 11234429217864304495, 4746959618548874102,
	},
	{
		13571697342473846203, 17477857865056504753, 15963032953523553760, 16033593225279635898,
		14252634232868282405, 8219748254835277737, 7459165569491914711, 15855939513193752003,
		16788866461340278896, 7102224659693946577, 3024718005636976471, 13695468978618890430,
	},
	{
		8214202050877825436, 2670727992739346204, 16259532062589659211, 11869922396257088411,
		3179482916972760137, 13525476046633427808, 3217337278042947412, 14494689598654046340,
		15837379330312175383, 8029037639801151344, 2153456285263517937, 8301106462311849241,
	},
	{
		13294194396455217955, 17394768489610594315, 12847609130464867455, 14015739446356528640,
		5879251655839607853, 9747000124977436185, 8950393546890284269, 10765765936405694368,
		14695323910334139959, 16366254691123000864, 15292774414889043182, 10910394433429313384,
	},
	{
		17253424460214596184, 3442854447664030446, 3005570425335613727, 10859158614900201063,
		9763230642109343539, 6647722546511515039, 909012944955815706, 18101204076790399111,
		11588128829349125809, 15863878496612806566, 5201119062417750399, 176665553780565743,
	},
}

// Internal (partial) round constants, added to lane 0 only.
var poseidonInternalConstants = [poseidonRoundsPart]Goldilocks{
	11921381764981422944, 10318423381711320787, 8291411502347000766, 229948027109387563,
	9152521390190983261, 7129306032690285515, 15395989607365232011, 8641397269074305925,
	17256848792241043600, 6046475228902245682, 12041608676381094092, 12785542378683951657,
	14546032085337914034, 3304199118235116851, 16499627707072547655, 10386478025625759321,
	13475579315436919170, 16042710511297532028, 1411266850385657080, 9024840976168649958,
	14047056970978379368, 838728605080212101,
}

// Diagonal of the internal linear layer matrix (M_I = J + diag).
var poseidonMatDiag = [poseidonWidth]Goldilocks{
	0xc3b6c08e23ba9300, 0xd84b5de94a324fb6, 0x0d0c371c5b35b84f, 0x7964f570e7188037,
	0x5daf18bbd996604b, 0x6743bc47b9595257, 0x5528b9362c59bb70, 0xac45e25b7127b68b,
	0xa2077d7dfbb606b5, 0xf3faac6faee378ae, 0x0c6388b51545e883, 0xd27dbb6944917b60,
}

// poseidonSbox applies x^7, computed as ((x^2 * x)^2) * x.
func poseidonSbox(x Goldilocks) Goldilocks {
	x3 := x.Square().Mul(x)
	return x3.Square().Mul(x)
}

// poseidonExternalLayer applies the external MDS matrix circ(2*M4, M4, M4):
// an M4 transform on each 4-lane window, then column sums folded back in.
func poseidonExternalLayer(s *[poseidonWidth]Goldilocks) {
	for i := 0; i < 3; i++ {
		s0, s1, s2, s3 := s[4*i], s[4*i+1], s[4*i+2], s[4*i+3]
		t0 := s0.Add(s1)
		t1 := s2.Add(s3)
		t2 := t0.Add(t1)
		t3 := t2.Add(s1)
		t4 := t2.Add(s3)
		t5 := s0.Double()
		t6 := s2.Double()
		s[4*i] = t3.Add(t0)
		s[4*i+1] = t6.Add(t3)
		s[4*i+2] = t1.Add(t4)
		s[4*i+3] = t5.Add(t4)
	}
	var sums [4]Goldilocks
	for j := 0; j < 4; j++ {
		sums[j] = s[j].Add(s[j+4]).Add(s[j+8])
	}
	for i := range s {
		s[i] = s[i].Add(sums[i%4])
	}
}

// poseidonInternalLayer applies M_I: s_i <- diag_i * s_i + sum(s).
func poseidonInternalLayer(s *[poseidonWidth]Goldilocks) {
	sum := s[0]
	for i := 1; i < poseidonWidth; i++ {
		sum = sum.Add(s[i])
	}
	for i := range s {
		s[i] = s[i].Mul(poseidonMatDiag[i]).Add(sum)
	}
}

// poseidonPermute runs the full Poseidon2 permutation in place.
func poseidonPermute(s *[poseidonWidth]Goldilocks) {
	poseidonExternalLayer(s)
	for r := 0; r < poseidonRoundsFull; r++ {
		for i := range s {
			s[i] = s[i].Add(poseidonExternalConstants[r][i])
		}
		for i := range s {
			s[i] = poseidonSbox(s[i])
		}
		poseidonExternalLayer(s)
	}
	for r := 0; r < poseidonRoundsPart; r++ {
		s[0] = poseidonSbox(s[0].Add(poseidonInternalConstants[r]))
		poseidonInternalLayer(s)
	}
	for r := poseidonRoundsFull; r < 2*poseidonRoundsFull; r++ {
		for i := range s {
			s[i] = s[i].Add(poseidonExternalConstants[r][i])
		}
		for i := range s {
			s[i] = poseidonSbox(s[i])
		}
		poseidonExternalLayer(s)
	}
}

// HashToQuinticExtension absorbs a Goldilocks sequence through the Poseidon2
// sponge (rate 8, capacity 4) and squeezes an Fp5 digest from the first
// five lanes.
//
// Padding appends a single 1 element, then zeros up to a rate multiple; the
// 1 is always appended, including for inputs that are already block-aligned.
// Blocks are absorbed by addition into the rate lanes.
func HashToQuinticExtension(input []Goldilocks) Fp5 {
	padded := make([]Goldilocks, 0, len(input)+poseidonRate)
	padded = append(padded, input...)
	padded = append(padded, 1)
	for len(padded)%poseidonRate != 0 {
		padded = append(padded, 0)
	}

	var state [poseidonWidth]Goldilocks
	for off := 0; off < len(padded); off += poseidonRate {
		for j := 0; j < poseidonRate; j++ {
			state[j] = state[j].Add(padded[off+j])
		}
		poseidonPermute(&state)
	}

	return Fp5{state[0], state[1], state[2], state[3], state[4]}
}
