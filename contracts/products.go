package contracts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// ProductContract handles product registration and lookups.
type ProductContract struct {
	contractapi.Contract
}

// RegisterProduct registers a new pharmaceutical batch and returns its id.
// Only authorized manufacturers may call it; the caller becomes both the
// manufacturer of record and the first custody holder. Ids are allocated
// densely from 1 and never reused.
func (p *ProductContract) RegisterProduct(ctx contractapi.TransactionContextInterface,
	name string, batchNumber string, manufacturerName string, quantity uint64,
	mfgDate int64, expiryDate int64, category string) (uint64, error) {

	caller, err := callerMSPID(ctx)
	if err != nil {
		return 0, err
	}

	authContract := &AuthorizationContract{}
	authorized, err := authContract.IsAuthorizedManufacturer(ctx, caller)
	if err != nil {
		return 0, err
	}
	if !authorized {
		return 0, fmt.Errorf("caller %s: %w", caller, ErrNotAuthorizedManufacturer)
	}

	counter, err := readProductCounter(ctx)
	if err != nil {
		return 0, err
	}
	id := counter + 1

	product := Product{
		ID:               id,
		Name:             name,
		BatchNumber:      batchNumber,
		ManufacturerName: manufacturerName,
		Manufacturer:     caller,
		Quantity:         quantity,
		MfgDate:          mfgDate,
		ExpiryDate:       expiryDate,
		Category:         category,
		CurrentHolder:    caller,
		IsAuthentic:      true,
		CreatedAt:        time.Now().Unix(),
	}

	if err := putProduct(ctx, &product); err != nil {
		return 0, fmt.Errorf("failed to store product %d: %v", id, err)
	}

	if err := writeProductCounter(ctx, id); err != nil {
		return 0, fmt.Errorf("failed to advance product counter: %v", err)
	}

	index, err := getManufacturerIndex(ctx, caller)
	if err != nil {
		return 0, err
	}
	index.ProductIDs = append(index.ProductIDs, id)
	if err := putManufacturerIndex(ctx, index); err != nil {
		return 0, fmt.Errorf("failed to update manufacturer index: %v", err)
	}

	eventJSON, err := json.Marshal(ProductRegisteredEvent{
		ProductID:    id,
		Manufacturer: caller,
		Name:         name,
		BatchNumber:  batchNumber,
	})
	if err != nil {
		return 0, err
	}
	if err := ctx.GetStub().SetEvent(EventProductRegistered, eventJSON); err != nil {
		return 0, err
	}

	return id, nil
}

// VerifyProduct returns the full product record for authenticity checks.
func (p *ProductContract) VerifyProduct(ctx contractapi.TransactionContextInterface,
	id uint64) (*Product, error) {

	return getProduct(ctx, id)
}

// ProductExists checks if a product id has been registered.
func (p *ProductContract) ProductExists(ctx contractapi.TransactionContextInterface,
	id uint64) (bool, error) {

	data, err := ctx.GetStub().GetState(productKey(id))
	if err != nil {
		return false, fmt.Errorf("failed to read product %d: %v", id, err)
	}

	return data != nil, nil
}

// GetNextProductID returns the id the next registration will be assigned.
func (p *ProductContract) GetNextProductID(ctx contractapi.TransactionContextInterface) (uint64, error) {
	counter, err := readProductCounter(ctx)
	if err != nil {
		return 0, err
	}

	return counter + 1, nil
}

// GetProductsByManufacturer returns a manufacturer's product ids in
// registration order.
func (p *ProductContract) GetProductsByManufacturer(ctx contractapi.TransactionContextInterface,
	principal string) ([]uint64, error) {

	index, err := getManufacturerIndex(ctx, principal)
	if err != nil {
		return nil, err
	}

	return index.ProductIDs, nil
}

// GetAllProducts returns every registered product in id order.
func (p *ProductContract) GetAllProducts(ctx contractapi.TransactionContextInterface) ([]*Product, error) {
	resultsIterator, err := ctx.GetStub().GetStateByRange(productPrefix, productPrefix+"~")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %v", err)
	}
	defer resultsIterator.Close()

	products := []*Product{}
	for resultsIterator.HasNext() {
		queryResponse, err := resultsIterator.Next()
		if err != nil {
			return nil, err
		}

		// The counter key shares the prefix; skip anything that is not a
		// product document.
		if queryResponse.Key == productCounterKey {
			continue
		}

		var product Product
		if err := json.Unmarshal(queryResponse.Value, &product); err != nil {
			continue
		}

		products = append(products, &product)
	}

	return products, nil
}
