package wallet

import "context"

// StaticConnector binds the service to one configured account. Headless
// deployments have no interactive wallet to prompt, so connecting always
// yields the configured identity.
type StaticConnector struct {
	account Account
}

// NewStaticConnector creates a connector for a fixed account.
func NewStaticConnector(address, publicKey string) *StaticConnector {
	return &StaticConnector{account: Account{Address: address, PublicKey: publicKey}}
}

func (c *StaticConnector) Connect(context.Context) (Account, error) {
	return c.account, nil
}

func (c *StaticConnector) Disconnect(context.Context) error {
	return nil
}
