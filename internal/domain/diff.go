package domain

// Diff returns the JSON names of the top-level order fields whose values
// differ between old and new, in a fixed order. Products are compared as a
// multiset: reordering the same product lines is not a change.
func Diff(old, new Order) []string {
	var changed []string

	if old.OrderID != new.OrderID {
		changed = append(changed, "orderId")
	}
	if old.UserID != new.UserID {
		changed = append(changed, "userId")
	}
	if old.Status != new.Status {
		changed = append(changed, "status")
	}
	if !sameProducts(old.Products, new.Products) {
		changed = append(changed, "products")
	}
	if !sameAddress(old.Address, new.Address) {
		changed = append(changed, "address")
	}
	if old.DeliveryPrice != new.DeliveryPrice {
		changed = append(changed, "deliveryPrice")
	}
	if old.Total != new.Total {
		changed = append(changed, "total")
	}
	if old.CreatedDate != new.CreatedDate {
		changed = append(changed, "createdDate")
	}
	if old.ModifiedDate != new.ModifiedDate {
		changed = append(changed, "modifiedDate")
	}

	return changed
}

func sameProducts(a, b []Product) bool {
	if len(a) != len(b) {
		return false
	}

	counts := make(map[Product]int, len(a))
	for _, p := range a {
		counts[p]++
	}
	for _, p := range b {
		counts[p]--
		if counts[p] < 0 {
			return false
		}
	}
	return true
}

func sameAddress(a, b *Address) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
