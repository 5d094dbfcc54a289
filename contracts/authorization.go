package contracts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// AuthorizationContract manages the owner-gated allow-list of manufacturers.
type AuthorizationContract struct {
	contractapi.Contract
}

// Initialize records the caller as the registry owner. Deployment tooling
// invokes this exactly once at instantiation; the owner never changes
// afterwards.
func (a *AuthorizationContract) Initialize(ctx contractapi.TransactionContextInterface) error {
	existing, err := ctx.GetStub().GetState(ownerKey)
	if err != nil {
		return fmt.Errorf("failed to read registry owner: %v", err)
	}
	if existing != nil {
		return fmt.Errorf("owner is %s: %w", string(existing), ErrAlreadyInitialized)
	}

	caller, err := callerMSPID(ctx)
	if err != nil {
		return err
	}

	return ctx.GetStub().PutState(ownerKey, []byte(caller))
}

// AuthorizeManufacturer grants or revokes a principal's right to register
// products. Only the registry owner may call it.
func (a *AuthorizationContract) AuthorizeManufacturer(ctx contractapi.TransactionContextInterface,
	principal string, authorized bool) error {

	caller, err := callerMSPID(ctx)
	if err != nil {
		return err
	}

	owner, err := a.GetOwner(ctx)
	if err != nil {
		return err
	}
	if caller != owner {
		return fmt.Errorf("caller %s: %w", caller, ErrNotOwner)
	}

	entry := AuthorizationEntry{
		Principal:  principal,
		Authorized: authorized,
		UpdatedBy:  caller,
		UpdatedAt:  time.Now().Unix(),
	}

	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	if err := ctx.GetStub().PutState(authKey(principal), entryJSON); err != nil {
		return fmt.Errorf("failed to store authorization for %s: %v", principal, err)
	}

	eventJSON, err := json.Marshal(ManufacturerAuthorizedEvent{
		Principal:  principal,
		Authorized: authorized,
	})
	if err != nil {
		return err
	}

	return ctx.GetStub().SetEvent(EventManufacturerAuthorized, eventJSON)
}

// IsAuthorizedManufacturer reports whether a principal may register products.
// Unknown principals are not authorized.
func (a *AuthorizationContract) IsAuthorizedManufacturer(ctx contractapi.TransactionContextInterface,
	principal string) (bool, error) {

	data, err := ctx.GetStub().GetState(authKey(principal))
	if err != nil {
		return false, fmt.Errorf("failed to read authorization for %s: %v", principal, err)
	}
	if data == nil {
		return false, nil
	}

	var entry AuthorizationEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return false, err
	}

	return entry.Authorized, nil
}

// GetOwner returns the registry owner's MSP ID.
func (a *AuthorizationContract) GetOwner(ctx contractapi.TransactionContextInterface) (string, error) {
	data, err := ctx.GetStub().GetState(ownerKey)
	if err != nil {
		return "", fmt.Errorf("failed to read registry owner: %v", err)
	}
	if data == nil {
		return "", ErrNotInitialized
	}

	return string(data), nil
}

// GetAuthorizedManufacturers returns the currently authorized entries.
func (a *AuthorizationContract) GetAuthorizedManufacturers(ctx contractapi.TransactionContextInterface) ([]*AuthorizationEntry, error) {
	resultsIterator, err := ctx.GetStub().GetStateByRange(authPrefix, authPrefix+"~")
	if err != nil {
		return nil, fmt.Errorf("failed to query authorizations: %v", err)
	}
	defer resultsIterator.Close()

	entries := []*AuthorizationEntry{}
	for resultsIterator.HasNext() {
		queryResponse, err := resultsIterator.Next()
		if err != nil {
			return nil, err
		}

		var entry AuthorizationEntry
		if err := json.Unmarshal(queryResponse.Value, &entry); err != nil {
			continue
		}

		if entry.Authorized {
			entries = append(entries, &entry)
		}
	}

	return entries, nil
}
