package ft232h

import "fmt"

// Transfer asserts chip select, exchanges tx for an equal number of bytes,
// then releases chip select.
func (ft *FT232H) Transfer(tx []byte) ([]byte, error) {
	rx, err := ft.SPI.Swap(tx, true, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ft, err)
	}
	return rx, nil
}

func (ft *FT232H) Close() error {
	return ft.FT232H.Close()
}
