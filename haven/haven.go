package haven

// COIN Number of smallest atomic units in one coin, pow(10, 12)
const COIN = uint64(1000000000000)

const EncryptedAmountSize = 8

// Hard fork gates relevant to the RingCT engine. Every verification predicate
// may branch on these; legacy columns stay frozen for replay.
const (
	// HardForkOffshoreFull First fork with XHV<->XUSD conversions live
	HardForkOffshoreFull = 13
	// HardForkXAssetFull xUSD<->xAsset conversions live
	HardForkXAssetFull = 16
	// HardForkXAssetFeesV2 xAsset conversion fees burned at 80%
	HardForkXAssetFeesV2 = 17
	// HardForkHaven2 Single-colour outPk, source-colour fees, mask sums
	HardForkHaven2 = 18
	// HardForkPerOutputUnlock min/max spot-vs-MA pricing on conversions
	HardForkPerOutputUnlock = 19
	// HardForkUseCollateral Collateral requirements on offshore/onshore
	HardForkUseCollateral = 20
)

// Transaction versions used by assembly to select pricing behavior
const (
	POUTransactionVersion        = 6
	CollateralTransactionVersion = 7
)

type NetworkType int

const (
	MainNetwork = NetworkType(iota)
	TestNetwork
	StageNetwork
	FakeNetwork
)

// AssetType An asset colour circulating on the chain
type AssetType string

const (
	AssetXHV  = AssetType("XHV")
	AssetXUSD = AssetType("XUSD")
)

// AssetTypes All asset colours accepted by consensus. XHV is the native
// volatile coin, XUSD the pegged stablecoin, the rest are xAssets priced via
// the oracle record.
var AssetTypes = []AssetType{
	AssetXHV,
	AssetXUSD,
	"xAG",
	"xAU",
	"xAUD",
	"xBTC",
	"xCAD",
	"xCHF",
	"xCNY",
	"xEUR",
	"xGBP",
	"xJPY",
	"xNOK",
	"xNZD",
}

func IsValidAsset(asset AssetType) bool {
	for _, t := range AssetTypes {
		if t == asset {
			return true
		}
	}
	return false
}

// IsXAsset Anything that is neither the native coin nor the stablecoin
func IsXAsset(asset AssetType) bool {
	return asset != AssetXHV && asset != AssetXUSD
}
