package main

import (
	"log"
	"os"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/pharma-supply-chain/chaincode/pharma-ledger/contracts"
)

// RunAsService runs the chaincode as an external service
func RunAsService() {
	cc, err := contractapi.NewChaincode(
		&contracts.AuthorizationContract{},
		&contracts.ProductContract{},
		&contracts.CustodyContract{},
	)
	if err != nil {
		log.Fatalf("Error creating pharma ledger chaincode: %v", err)
	}

	server := &shim.ChaincodeServer{
		CCID:    os.Getenv("CHAINCODE_ID"),
		Address: os.Getenv("CHAINCODE_SERVER_ADDRESS"),
		CC:      cc,
		TLSProps: shim.TLSProperties{
			Disabled: true, // No TLS for simplicity
		},
	}

	// Start the chaincode server
	if err := server.Start(); err != nil {
		log.Fatalf("Error starting pharma ledger chaincode server: %v", err)
	}
}
