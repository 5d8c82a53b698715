package rpc

import (
	"encoding/json"

	"rewardpoints/core/events"
	"rewardpoints/crypto"
	"rewardpoints/native/points"
)

type callerIdentityParams struct {
	Caller   string `json:"caller"`
	Identity string `json:"identity"`
}

type callerMerchantParams struct {
	Caller     string `json:"caller"`
	MerchantID uint64 `json:"merchantId"`
}

type callerParams struct {
	Caller string `json:"caller"`
}

type identityParams struct {
	Identity string `json:"identity"`
}

type merchantIDParams struct {
	MerchantID uint64 `json:"merchantId"`
}

type userIDParams struct {
	UserID uint64 `json:"userId"`
}

type operatorQueryParams struct {
	Operator   string `json:"operator"`
	MerchantID uint64 `json:"merchantId"`
}

type rewardParams struct {
	Caller string `json:"caller"`
	User   string `json:"user"`
	Amount uint64 `json:"amount"`
}

type redeemParams struct {
	Caller     string `json:"caller"`
	MerchantID uint64 `json:"merchantId"`
	Amount     uint64 `json:"amount"`
}

type ledgerQueryParams struct {
	User       string `json:"user"`
	MerchantID uint64 `json:"merchantId"`
}

type eventsParams struct {
	After uint64 `json:"after"`
	Limit int    `json:"limit"`
}

type merchantResult struct {
	ID        uint64   `json:"id"`
	Identity  string   `json:"identity"`
	Approved  bool     `json:"approved"`
	Operators []string `json:"operators"`
}

type userResult struct {
	ID            uint64 `json:"id"`
	Identity      string `json:"identity"`
	Approved      bool   `json:"approved"`
	TotalEarned   uint64 `json:"totalEarned"`
	TotalRedeemed uint64 `json:"totalRedeemed"`
}

type eventResult struct {
	Sequence uint64       `json:"sequence"`
	Type     string       `json:"type"`
	Event    events.Event `json:"event"`
}

func decodeParams(params []json.RawMessage, out interface{}) *RPCError {
	if len(params) != 1 {
		return invalidParams("expected a single params object")
	}
	if err := json.Unmarshal(params[0], out); err != nil {
		return invalidParams("malformed params: " + err.Error())
	}
	return nil
}

func parseAddr(value, field string) ([20]byte, *RPCError) {
	addr, err := crypto.DecodeAddress(value)
	if err != nil {
		return [20]byte{}, invalidParams("invalid " + field + " address: " + err.Error())
	}
	return addr.Bytes(), nil
}

func formatMerchant(m *points.Merchant) merchantResult {
	operators := make([]string, 0, len(m.Operators))
	for _, op := range m.Operators {
		operators = append(operators, crypto.NewAddress(op).String())
	}
	return merchantResult{
		ID:        m.ID,
		Identity:  crypto.NewAddress(m.Identity).String(),
		Approved:  m.Approved,
		Operators: operators,
	}
}

func formatUser(u *points.User) userResult {
	return userResult{
		ID:            u.ID,
		Identity:      crypto.NewAddress(u.Identity).String(),
		Approved:      u.Approved,
		TotalEarned:   u.TotalEarned,
		TotalRedeemed: u.TotalRedeemed,
	}
}

func (s *Server) addAdmin(params []json.RawMessage) (interface{}, *RPCError) {
	var p callerIdentityParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := parseAddr(p.Caller, "caller")
	if rpcErr != nil {
		return nil, rpcErr
	}
	identity, rpcErr := parseAddr(p.Identity, "identity")
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.AddAdmin(caller, identity); err != nil {
		return nil, engineError(err)
	}
	return true, nil
}

func (s *Server) removeAdmin(params []json.RawMessage) (interface{}, *RPCError) {
	var p callerIdentityParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := parseAddr(p.Caller, "caller")
	if rpcErr != nil {
		return nil, rpcErr
	}
	identity, rpcErr := parseAddr(p.Identity, "identity")
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.RemoveAdmin(caller, identity); err != nil {
		return nil, engineError(err)
	}
	return true, nil
}

func (s *Server) isAdmin(params []json.RawMessage) (interface{}, *RPCError) {
	var p identityParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	identity, rpcErr := parseAddr(p.Identity, "identity")
	if rpcErr != nil {
		return nil, rpcErr
	}
	admin, err := s.engine.IsAdmin(identity)
	if err != nil {
		return nil, engineError(err)
	}
	return admin, nil
}

func (s *Server) addMerchant(params []json.RawMessage) (interface{}, *RPCError) {
	var p callerIdentityParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := parseAddr(p.Caller, "caller")
	if rpcErr != nil {
		return nil, rpcErr
	}
	identity, rpcErr := parseAddr(p.Identity, "identity")
	if rpcErr != nil {
		return nil, rpcErr
	}
	id, err := s.engine.AddMerchant(caller, identity)
	if err != nil {
		return nil, engineError(err)
	}
	return map[string]uint64{"merchantId": id}, nil
}

func (s *Server) banMerchant(params []json.RawMessage) (interface{}, *RPCError) {
	var p callerMerchantParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := parseAddr(p.Caller, "caller")
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.BanMerchant(caller, p.MerchantID); err != nil {
		return nil, engineError(err)
	}
	return true, nil
}

func (s *Server) approveMerchant(params []json.RawMessage) (interface{}, *RPCError) {
	var p callerMerchantParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := parseAddr(p.Caller, "caller")
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.ApproveMerchant(caller, p.MerchantID); err != nil {
		return nil, engineError(err)
	}
	return true, nil
}

func (s *Server) getMerchantByID(params []json.RawMessage) (interface{}, *RPCError) {
	var p merchantIDParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	merchant, err := s.engine.GetMerchantByID(p.MerchantID)
	if err != nil {
		return nil, engineError(err)
	}
	return formatMerchant(merchant), nil
}

func (s *Server) getMerchantByAddress(params []json.RawMessage) (interface{}, *RPCError) {
	var p identityParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	identity, rpcErr := parseAddr(p.Identity, "identity")
	if rpcErr != nil {
		return nil, rpcErr
	}
	merchant, err := s.engine.GetMerchantByAddress(identity)
	if err != nil {
		return nil, engineError(err)
	}
	return formatMerchant(merchant), nil
}

func (s *Server) addOperator(params []json.RawMessage) (interface{}, *RPCError) {
	var p callerIdentityParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := parseAddr(p.Caller, "caller")
	if rpcErr != nil {
		return nil, rpcErr
	}
	identity, rpcErr := parseAddr(p.Identity, "identity")
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.AddOperator(caller, identity); err != nil {
		return nil, engineError(err)
	}
	return true, nil
}

func (s *Server) removeOperator(params []json.RawMessage) (interface{}, *RPCError) {
	var p callerIdentityParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := parseAddr(p.Caller, "caller")
	if rpcErr != nil {
		return nil, rpcErr
	}
	identity, rpcErr := parseAddr(p.Identity, "identity")
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.RemoveOperator(caller, identity); err != nil {
		return nil, engineError(err)
	}
	return true, nil
}

func (s *Server) transferOwnership(params []json.RawMessage) (interface{}, *RPCError) {
	var p callerIdentityParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := parseAddr(p.Caller, "caller")
	if rpcErr != nil {
		return nil, rpcErr
	}
	identity, rpcErr := parseAddr(p.Identity, "identity")
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.TransferMerchantOwnership(caller, identity); err != nil {
		return nil, engineError(err)
	}
	return true, nil
}

func (s *Server) isMerchantOperator(params []json.RawMessage) (interface{}, *RPCError) {
	var p operatorQueryParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	operator, rpcErr := parseAddr(p.Operator, "operator")
	if rpcErr != nil {
		return nil, rpcErr
	}
	ok, err := s.engine.IsMerchantOperator(operator, p.MerchantID)
	if err != nil {
		return nil, engineError(err)
	}
	return ok, nil
}

func (s *Server) addUser(params []json.RawMessage) (interface{}, *RPCError) {
	var p callerIdentityParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := parseAddr(p.Caller, "caller")
	if rpcErr != nil {
		return nil, rpcErr
	}
	identity, rpcErr := parseAddr(p.Identity, "identity")
	if rpcErr != nil {
		return nil, rpcErr
	}
	id, err := s.engine.AddUser(caller, identity)
	if err != nil {
		return nil, engineError(err)
	}
	return map[string]uint64{"userId": id}, nil
}

func (s *Server) banUser(params []json.RawMessage) (interface{}, *RPCError) {
	var p callerIdentityParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := parseAddr(p.Caller, "caller")
	if rpcErr != nil {
		return nil, rpcErr
	}
	identity, rpcErr := parseAddr(p.Identity, "identity")
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.BanUser(caller, identity); err != nil {
		return nil, engineError(err)
	}
	return true, nil
}

func (s *Server) approveUser(params []json.RawMessage) (interface{}, *RPCError) {
	var p callerIdentityParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := parseAddr(p.Caller, "caller")
	if rpcErr != nil {
		return nil, rpcErr
	}
	identity, rpcErr := parseAddr(p.Identity, "identity")
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.ApproveUser(caller, identity); err != nil {
		return nil, engineError(err)
	}
	return true, nil
}

func (s *Server) getUserByID(params []json.RawMessage) (interface{}, *RPCError) {
	var p userIDParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	user, err := s.engine.GetUserByID(p.UserID)
	if err != nil {
		return nil, engineError(err)
	}
	return formatUser(user), nil
}

func (s *Server) getUserByAddress(params []json.RawMessage) (interface{}, *RPCError) {
	var p identityParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	identity, rpcErr := parseAddr(p.Identity, "identity")
	if rpcErr != nil {
		return nil, rpcErr
	}
	user, err := s.engine.GetUserByAddress(identity)
	if err != nil {
		return nil, engineError(err)
	}
	return formatUser(user), nil
}

func (s *Server) rewardUser(params []json.RawMessage) (interface{}, *RPCError) {
	var p rewardParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := parseAddr(p.Caller, "caller")
	if rpcErr != nil {
		return nil, rpcErr
	}
	user, rpcErr := parseAddr(p.User, "user")
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.RewardUser(caller, user, p.Amount); err != nil {
		return nil, engineError(err)
	}
	return true, nil
}

func (s *Server) redeemPoints(params []json.RawMessage) (interface{}, *RPCError) {
	var p redeemParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := parseAddr(p.Caller, "caller")
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.RedeemPoints(caller, p.MerchantID, p.Amount); err != nil {
		return nil, engineError(err)
	}
	return true, nil
}

func (s *Server) earned(params []json.RawMessage) (interface{}, *RPCError) {
	var p ledgerQueryParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	user, rpcErr := parseAddr(p.User, "user")
	if rpcErr != nil {
		return nil, rpcErr
	}
	earned, err := s.engine.EarnedPointsAt(user, p.MerchantID)
	if err != nil {
		return nil, engineError(err)
	}
	return map[string]uint64{"earned": earned}, nil
}

func (s *Server) redeemed(params []json.RawMessage) (interface{}, *RPCError) {
	var p ledgerQueryParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	user, rpcErr := parseAddr(p.User, "user")
	if rpcErr != nil {
		return nil, rpcErr
	}
	redeemed, err := s.engine.RedeemedPointsAt(user, p.MerchantID)
	if err != nil {
		return nil, engineError(err)
	}
	return map[string]uint64{"redeemed": redeemed}, nil
}

func (s *Server) pause(params []json.RawMessage) (interface{}, *RPCError) {
	var p callerParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := parseAddr(p.Caller, "caller")
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.Pause(caller); err != nil {
		return nil, engineError(err)
	}
	return true, nil
}

func (s *Server) unpause(params []json.RawMessage) (interface{}, *RPCError) {
	var p callerParams
	if rpcErr := decodeParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := parseAddr(p.Caller, "caller")
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.Unpause(caller); err != nil {
		return nil, engineError(err)
	}
	return true, nil
}

func (s *Server) events(params []json.RawMessage) (interface{}, *RPCError) {
	p := eventsParams{Limit: 100}
	if len(params) > 0 {
		if rpcErr := decodeParams(params, &p); rpcErr != nil {
			return nil, rpcErr
		}
	}
	records := s.log.Since(p.After, p.Limit)
	out := make([]eventResult, 0, len(records))
	for _, rec := range records {
		out = append(out, eventResult{
			Sequence: rec.Sequence,
			Type:     rec.Event.EventType(),
			Event:    rec.Event,
		})
	}
	return out, nil
}
