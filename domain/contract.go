package domain

// ContractType selects which document template a generation request fills.
type ContractType string

const (
	ContractSale           ContractType = "sale"
	ContractDebtConfession ContractType = "debt_confession"
)

// Client carries the buyer-side identity fields printed on a contract.
// Records arrive from the back office already validated; optional fields may
// simply be empty.
type Client struct {
	Name       string `json:"name"`
	NIF        string `json:"nif"`
	IDDocument string `json:"id_document"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

// Car identifies the vehicle the contract is about.
type Car struct {
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Plate   string `json:"plate"`
	VIN     string `json:"vin"`
	Year    string `json:"year"`
	Mileage string `json:"mileage"`
	Color   string `json:"color"`
}

// ContractData is everything a single document render needs. Dates are kept
// as the display strings the back office submitted; the service never
// reinterprets them.
type ContractData struct {
	Client           Client  `json:"client"`
	Car              Car     `json:"car"`
	TotalPrice       float64 `json:"total_price"`
	DownPayment      float64 `json:"down_payment"`
	InstallmentCount int     `json:"installment_count"`
	IBAN             string  `json:"iban"`
	City             string  `json:"city"`
	Date             string  `json:"date"`
	FirstPaymentDate string  `json:"first_payment_date"`
}
