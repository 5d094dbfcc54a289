package contracts

import "fmt"

// Product represents a registered pharmaceutical batch. The manufacturer and
// createdAt fields are fixed at registration; only CurrentHolder changes
// afterwards, and only through TransferCustody.
type Product struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	BatchNumber      string `json:"batchNumber"`
	ManufacturerName string `json:"manufacturerName"`
	Manufacturer     string `json:"manufacturer"` // MSP ID of the registering org
	Quantity         uint64 `json:"quantity"`
	MfgDate          int64  `json:"mfgDate"`    // unix seconds, caller supplied
	ExpiryDate       int64  `json:"expiryDate"` // unix seconds, caller supplied
	Category         string `json:"category"`
	CurrentHolder    string `json:"currentHolder"`
	IsAuthentic      bool   `json:"isAuthentic"`
	CreatedAt        int64  `json:"createdAt"` // unix seconds
}

// Transfer records one custody hop for a product.
type Transfer struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Location  string `json:"location"`
	Timestamp int64  `json:"timestamp"` // unix seconds
	Verified  bool   `json:"verified"`
}

// TransferLog is the append-only per-product transfer history document.
// Entries are never reordered, edited, or removed.
type TransferLog struct {
	ProductID uint64     `json:"productId"`
	Transfers []Transfer `json:"transfers"`
}

// AuthorizationEntry records whether a principal may register products.
type AuthorizationEntry struct {
	Principal  string `json:"principal"`
	Authorized bool   `json:"authorized"`
	UpdatedBy  string `json:"updatedBy"`
	UpdatedAt  int64  `json:"updatedAt"` // unix seconds
}

// ManufacturerIndex lists a manufacturer's product ids in registration order.
type ManufacturerIndex struct {
	Principal  string   `json:"principal"`
	ProductIDs []uint64 `json:"productIds"`
}

// Event payloads, emitted via SetEvent on every successful mutating call.

type ManufacturerAuthorizedEvent struct {
	Principal  string `json:"principal"`
	Authorized bool   `json:"authorized"`
}

type ProductRegisteredEvent struct {
	ProductID    uint64 `json:"productId"`
	Manufacturer string `json:"manufacturer"`
	Name         string `json:"name"`
	BatchNumber  string `json:"batchNumber"`
}

type CustodyTransferredEvent struct {
	ProductID uint64 `json:"productId"`
	From      string `json:"from"`
	To        string `json:"to"`
	Location  string `json:"location"`
}

// Event names.
const (
	EventManufacturerAuthorized = "ManufacturerAuthorized"
	EventProductRegistered      = "ProductRegistered"
	EventCustodyTransferred     = "CustodyTransferred"
)

// Ledger key layout. Product and history keys zero-pad the id so that range
// scans over the prefix return products in id order.
const (
	ownerKey          = "registry_owner"
	productCounterKey = "product_counter"
	authPrefix        = "auth_"
	productPrefix     = "product_"
	historyPrefix     = "history_"
	mfrIndexPrefix    = "mfr_products_"
)

func authKey(principal string) string {
	return authPrefix + principal
}

func productKey(id uint64) string {
	return fmt.Sprintf("%s%012d", productPrefix, id)
}

func historyKey(id uint64) string {
	return fmt.Sprintf("%s%012d", historyPrefix, id)
}

func mfrIndexKey(principal string) string {
	return mfrIndexPrefix + principal
}
