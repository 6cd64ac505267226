package repository

const relationalEdgesCypher = `
MATCH (c1:Claimant)-[r:RELATED_TO|SHARES_ADDRESS|SHARES_PHONE]-(c2:Claimant)
WHERE c1.claimantId < c2.claimantId
RETURN c1.claimantId AS sourceId, c2.claimantId AS targetId, type(r) AS label
ORDER BY sourceId, targetId, label`

const repairShopUsageCypher = `
MATCH (c:Claimant)-[:FILED_CLAIM]->(cl:Claim)-[:REPAIRED_AT]->(s:RepairShop)
WITH s, collect(DISTINCT c.claimantId) AS claimantIds, count(DISTINCT cl) AS claimCount
WHERE claimCount >= $minClaims
RETURN s.shopId AS resourceId, s.name AS resourceName, claimantIds, claimCount
ORDER BY resourceId`

const medicalProviderUsageCypher = `
MATCH (c:Claimant)-[:FILED_CLAIM]->(cl:Claim)-[:TREATED_BY]->(m:MedicalProvider)
WITH m, collect(DISTINCT c.claimantId) AS claimantIds, count(DISTINCT cl) AS claimCount
WHERE claimCount >= $minClaims
RETURN m.providerId AS resourceId, m.name AS resourceName, claimantIds, claimCount
ORDER BY resourceId`

const recurringWitnessUsageCypher = `
MATCH (w:Witness)<-[:HAS_WITNESS]-(cl:Claim)<-[:FILED_CLAIM]-(c:Claimant)
WHERE w.isRecurring = true
WITH w, collect(DISTINCT c.claimantId) AS claimantIds, count(DISTINCT cl) AS claimCount
WHERE claimCount >= $minClaims
RETURN w.witnessId AS resourceId, w.name AS resourceName, claimantIds, claimCount
ORDER BY resourceId`

const connectionsWithinCypher = `
MATCH (c1:Claimant)-[:RELATED_TO|SHARES_ADDRESS|SHARES_PHONE]-(c2:Claimant)
WHERE c1.claimantId IN $claimantIds
  AND c2.claimantId IN $claimantIds
  AND c1.claimantId < c2.claimantId
RETURN count(DISTINCT [c1.claimantId, c2.claimantId]) AS connections`

const claimantRingFlagsCypher = `
MATCH (c:Claimant)
WHERE c.claimantId IN $claimantIds
RETURN c.claimantId AS claimantId, coalesce(c.isRingMember, false) AS isRingMember`

const claimContextCypher = `
MATCH (c:Claimant)-[:FILED_CLAIM]->(cl:Claim {claimId: $claimId})
OPTIONAL MATCH (cl)-[:REPAIRED_AT]->(s:RepairShop)
OPTIONAL MATCH (cl)-[:TREATED_BY]->(m:MedicalProvider)
OPTIONAL MATCH (cl)-[:REPRESENTED_BY]->(l:Lawyer)
RETURN cl.claimId AS claimId,
       cl.amount AS amount,
       cl.type AS claimType,
       cl.status AS status,
       c.claimantId AS claimantId,
       s.shopId AS shopId,
       m.providerId AS providerId,
       l.lawyerId AS lawyerId`

const ringConnectionCountCypher = `
MATCH (c:Claimant {claimantId: $claimantId})-[:RELATED_TO|SHARES_ADDRESS|SHARES_PHONE]-(other:Claimant)
WHERE other.isRingMember = true
RETURN count(DISTINCT other) AS ringConnections`

const repairShopClaimTotalCypher = `
MATCH (cl:Claim)-[:REPAIRED_AT]->(s:RepairShop {shopId: $resourceId})
RETURN count(cl) AS totalClaims`

const medicalProviderClaimTotalCypher = `
MATCH (cl:Claim)-[:TREATED_BY]->(m:MedicalProvider {providerId: $resourceId})
RETURN count(cl) AS totalClaims`

const lawyerClientCountCypher = `
MATCH (c:Claimant)-[:FILED_CLAIM]->(cl:Claim)-[:REPRESENTED_BY]->(l:Lawyer {lawyerId: $resourceId})
RETURN count(DISTINCT c) AS clientCount`

const claimHistoryCypher = `
MATCH (c:Claimant {claimantId: $claimantId})-[:FILED_CLAIM]->(cl:Claim)
RETURN count(cl) AS totalClaims, coalesce(sum(cl.amount), 0.0) AS totalAmount`

const sharedAddressCountCypher = `
MATCH (c:Claimant {claimantId: $claimantId})
MATCH (other:Claimant)
WHERE other.claimantId <> c.claimantId AND other.address = c.address
RETURN count(other) AS sharedCount`

const amountStatsCypher = `
MATCH (cl:Claim)
WHERE cl.type = $claimType
RETURN avg(cl.amount) AS mean, stDev(cl.amount) AS stdev, count(cl) AS count`

const countClaimantsCypher = `
MATCH (c:Claimant)
RETURN count(c) AS total`

const countClaimsCypher = `
MATCH (cl:Claim)
RETURN count(cl) AS total`

const ringMemberStatsCypher = `
MATCH (c:Claimant)
WHERE c.isRingMember = true
RETURN count(DISTINCT c.ringId) AS rings,
       count(c) AS members,
       count(CASE WHEN EXISTS { (c)-[:FILED_CLAIM]->(:Claim) } THEN 1 END) AS membersWithClaims`

const ringClaimStatsCypher = `
MATCH (cl:Claim)
WHERE cl.isRingClaim = true
RETURN count(cl) AS ringClaims, coalesce(sum(cl.amount), 0.0) AS ringAmount`

const claimantSubgraphCypher = `
MATCH path = (c:Claimant {claimantId: $claimantId})-[*1..2]-()
UNWIND nodes(path) AS node
UNWIND relationships(path) AS rel
RETURN collect(DISTINCT {
         id: coalesce(node.claimantId, node.claimId, node.policyId, node.vehicleId,
                      node.shopId, node.providerId, node.lawyerId, node.witnessId),
         type: head(labels(node)),
         label: coalesce(node.name, node.claimId, '')
       }) AS nodes,
       collect(DISTINCT {
         type: type(rel),
         source: coalesce(startNode(rel).claimantId, startNode(rel).claimId, startNode(rel).policyId,
                          startNode(rel).vehicleId, startNode(rel).shopId, startNode(rel).providerId,
                          startNode(rel).lawyerId, startNode(rel).witnessId),
         target: coalesce(endNode(rel).claimantId, endNode(rel).claimId, endNode(rel).policyId,
                          endNode(rel).vehicleId, endNode(rel).shopId, endNode(rel).providerId,
                          endNode(rel).lawyerId, endNode(rel).witnessId)
       }) AS edges`
