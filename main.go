package main

import (
	"log"
	"os"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/pharma-supply-chain/chaincode/pharma-ledger/contracts"
)

func main() {
	// Check if running as external service
	if os.Getenv("CHAINCODE_SERVER_ADDRESS") != "" {
		RunAsService()
	} else {
		// Run as regular chaincode
		chaincode, err := contractapi.NewChaincode(
			&contracts.AuthorizationContract{},
			&contracts.ProductContract{},
			&contracts.CustodyContract{},
		)
		if err != nil {
			log.Fatalf("Error creating pharma ledger chaincode: %v", err)
		}
		if err := chaincode.Start(); err != nil {
			log.Fatalf("Error starting pharma ledger chaincode: %v", err)
		}
	}
}
