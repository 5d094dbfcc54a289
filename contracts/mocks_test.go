package contracts

import (
	"crypto/x509"
	"sort"

	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
)

// In-memory fakes for the pieces of the Fabric runtime the contracts touch.
// Only the stub methods the contracts call are overridden; anything else
// panics via the embedded nil interface, which is what we want in tests.

type mockStub struct {
	shim.ChaincodeStubInterface
	state        map[string][]byte
	eventName    string
	eventPayload []byte
}

func newMockStub() *mockStub {
	return &mockStub{state: map[string][]byte{}}
}

func (s *mockStub) GetState(key string) ([]byte, error) {
	return s.state[key], nil
}

func (s *mockStub) PutState(key string, value []byte) error {
	s.state[key] = value
	return nil
}

func (s *mockStub) SetEvent(name string, payload []byte) error {
	s.eventName = name
	s.eventPayload = payload
	return nil
}

func (s *mockStub) GetStateByRange(startKey, endKey string) (shim.StateQueryIteratorInterface, error) {
	keys := make([]string, 0, len(s.state))
	for key := range s.state {
		if key >= startKey && key < endKey {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	kvs := make([]*queryresult.KV, 0, len(keys))
	for _, key := range keys {
		kvs = append(kvs, &queryresult.KV{Key: key, Value: s.state[key]})
	}

	return &mockIterator{kvs: kvs}, nil
}

type mockIterator struct {
	kvs []*queryresult.KV
	pos int
}

func (it *mockIterator) HasNext() bool {
	return it.pos < len(it.kvs)
}

func (it *mockIterator) Next() (*queryresult.KV, error) {
	kv := it.kvs[it.pos]
	it.pos++
	return kv, nil
}

func (it *mockIterator) Close() error {
	return nil
}

type mockIdentity struct {
	mspID string
}

func (m *mockIdentity) GetID() (string, error) {
	return m.mspID, nil
}

func (m *mockIdentity) GetMSPID() (string, error) {
	return m.mspID, nil
}

func (m *mockIdentity) GetAttributeValue(string) (string, bool, error) {
	return "", false, nil
}

func (m *mockIdentity) AssertAttributeValue(string, string) error {
	return nil
}

func (m *mockIdentity) GetX509Certificate() (*x509.Certificate, error) {
	return nil, nil
}

type mockContext struct {
	stub     *mockStub
	identity *mockIdentity
}

func (c *mockContext) GetStub() shim.ChaincodeStubInterface {
	return c.stub
}

func (c *mockContext) GetClientIdentity() cid.ClientIdentity {
	return c.identity
}

// testLedger bundles the contracts with a shared stub so tests can switch the
// caller between calls, the way different orgs would invoke the chaincode.
type testLedger struct {
	stub *mockStub
	auth *AuthorizationContract
	prod *ProductContract
	cust *CustodyContract
}

func newTestLedger() *testLedger {
	return &testLedger{
		stub: newMockStub(),
		auth: &AuthorizationContract{},
		prod: &ProductContract{},
		cust: &CustodyContract{},
	}
}

func (l *testLedger) as(mspID string) *mockContext {
	return &mockContext{stub: l.stub, identity: &mockIdentity{mspID: mspID}}
}

// snapshot copies the ledger state for before/after comparisons.
func (l *testLedger) snapshot() map[string][]byte {
	copied := make(map[string][]byte, len(l.stub.state))
	for key, value := range l.stub.state {
		copied[key] = value
	}
	return copied
}
