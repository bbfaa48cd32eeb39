package domain

// Order statuses. Transitions between them are driven exclusively by
// warehouse and delivery events, see transition.go.
const (
	StatusCreated         = "CREATED"
	StatusPackaged        = "PACKAGED"
	StatusPackagingFailed = "PACKAGING_FAILED"
	StatusFulfilled       = "FULFILLED"
	StatusDeliveryFailed  = "DELIVERY_FAILED"
)

type Order struct {
	OrderID       string    `json:"orderId"`
	UserID        string    `json:"userId,omitempty"`
	Status        string    `json:"status"`
	Products      []Product `json:"products"`
	Address       *Address  `json:"address,omitempty"`
	DeliveryPrice int       `json:"deliveryPrice,omitempty"`
	Total         int       `json:"total,omitempty"`
	CreatedDate   string    `json:"createdDate,omitempty"`
	ModifiedDate  string    `json:"modifiedDate,omitempty"`
}

type Product struct {
	ProductID string `json:"productId"`
	Name      string `json:"name,omitempty"`
	Package   string `json:"package,omitempty"`
	Price     int    `json:"price,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}

type Address struct {
	Name          string `json:"name,omitempty"`
	StreetAddress string `json:"streetAddress,omitempty"`
	City          string `json:"city,omitempty"`
	Country       string `json:"country,omitempty"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
}
