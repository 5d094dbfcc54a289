package contracts

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// Shared state accessors for the three contracts. All documents are stored as
// JSON under the prefixed keys defined in types.go.

func getProduct(ctx contractapi.TransactionContextInterface, id uint64) (*Product, error) {
	data, err := ctx.GetStub().GetState(productKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read product %d: %v", id, err)
	}
	if data == nil {
		return nil, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
	}

	var product Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func putProduct(ctx contractapi.TransactionContextInterface, product *Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return ctx.GetStub().PutState(productKey(product.ID), data)
}

// getTransferLog returns the product's history document, or an empty log if no
// transfer has happened yet. Callers must check product existence separately.
func getTransferLog(ctx contractapi.TransactionContextInterface, id uint64) (*TransferLog, error) {
	data, err := ctx.GetStub().GetState(historyKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read transfer history for product %d: %v", id, err)
	}
	if data == nil {
		return &TransferLog{ProductID: id, Transfers: []Transfer{}}, nil
	}

	var log TransferLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, err
	}
	if log.Transfers == nil {
		log.Transfers = []Transfer{}
	}

	return &log, nil
}

func putTransferLog(ctx contractapi.TransactionContextInterface, log *TransferLog) error {
	data, err := json.Marshal(log)
	if err != nil {
		return err
	}
	return ctx.GetStub().PutState(historyKey(log.ProductID), data)
}

// readProductCounter returns the last allocated product id, 0 if none yet.
func readProductCounter(ctx contractapi.TransactionContextInterface) (uint64, error) {
	data, err := ctx.GetStub().GetState(productCounterKey)
	if err != nil {
		return 0, fmt.Errorf("failed to read product counter: %v", err)
	}
	if data == nil {
		return 0, nil
	}

	counter, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt product counter %q: %v", string(data), err)
	}

	return counter, nil
}

func writeProductCounter(ctx contractapi.TransactionContextInterface, counter uint64) error {
	return ctx.GetStub().PutState(productCounterKey, []byte(strconv.FormatUint(counter, 10)))
}

func getManufacturerIndex(ctx contractapi.TransactionContextInterface, principal string) (*ManufacturerIndex, error) {
	data, err := ctx.GetStub().GetState(mfrIndexKey(principal))
	if err != nil {
		return nil, fmt.Errorf("failed to read manufacturer index for %s: %v", principal, err)
	}
	if data == nil {
		return &ManufacturerIndex{Principal: principal, ProductIDs: []uint64{}}, nil
	}

	var index ManufacturerIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, err
	}
	if index.ProductIDs == nil {
		index.ProductIDs = []uint64{}
	}

	return &index, nil
}

func putManufacturerIndex(ctx contractapi.TransactionContextInterface, index *ManufacturerIndex) error {
	data, err := json.Marshal(index)
	if err != nil {
		return err
	}
	return ctx.GetStub().PutState(mfrIndexKey(index.Principal), data)
}

func callerMSPID(ctx contractapi.TransactionContextInterface) (string, error) {
	caller, err := ctx.GetClientIdentity().GetMSPID()
	if err != nil {
		return "", fmt.Errorf("failed to get caller identity: %v", err)
	}
	return caller, nil
}
