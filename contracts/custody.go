package contracts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// CustodyContract handles custody hand-offs along the supply chain. The
// per-product transfer log is the only path that changes a product's
// currentHolder.
type CustodyContract struct {
	contractapi.Contract
}

// TransferCustody hands a product from its current holder to a new one.
// Only the current holder may call it; transferring to yourself is a legal
// custody hop and still appends a record.
func (c *CustodyContract) TransferCustody(ctx contractapi.TransactionContextInterface,
	id uint64, to string, location string) error {

	product, err := getProduct(ctx, id)
	if err != nil {
		return err
	}

	caller, err := callerMSPID(ctx)
	if err != nil {
		return err
	}
	if caller != product.CurrentHolder {
		return fmt.Errorf("caller %s: %w", caller, ErrNotCurrentHolder)
	}

	if to == "" {
		return ErrInvalidTransfer
	}

	log, err := getTransferLog(ctx, id)
	if err != nil {
		return err
	}

	transfer := Transfer{
		From:      caller,
		To:        to,
		Location:  location,
		Timestamp: time.Now().Unix(),
		Verified:  true,
	}
	log.Transfers = append(log.Transfers, transfer)

	if err := putTransferLog(ctx, log); err != nil {
		return fmt.Errorf("failed to store transfer history for product %d: %v", id, err)
	}

	product.CurrentHolder = to
	if err := putProduct(ctx, product); err != nil {
		return fmt.Errorf("failed to update product %d: %v", id, err)
	}

	eventJSON, err := json.Marshal(CustodyTransferredEvent{
		ProductID: id,
		From:      caller,
		To:        to,
		Location:  location,
	})
	if err != nil {
		return err
	}

	return ctx.GetStub().SetEvent(EventCustodyTransferred, eventJSON)
}

// GetTransferHistory returns a product's custody hops in chronological order.
func (c *CustodyContract) GetTransferHistory(ctx contractapi.TransactionContextInterface,
	id uint64) ([]Transfer, error) {

	if _, err := getProduct(ctx, id); err != nil {
		return nil, err
	}

	log, err := getTransferLog(ctx, id)
	if err != nil {
		return nil, err
	}

	return log.Transfers, nil
}

// GetTransferCount returns the number of custody hops a product has had.
func (c *CustodyContract) GetTransferCount(ctx contractapi.TransactionContextInterface,
	id uint64) (uint64, error) {

	history, err := c.GetTransferHistory(ctx, id)
	if err != nil {
		return 0, err
	}

	return uint64(len(history)), nil
}
